package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/middleware"
	"github.com/tdhoang/mockmate/internal/service"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// GetByInterview returns the current user's feedback for one interview. Each
// (interview, user) pair has at most one feedback row; retakes overwrite it.
func (c *FeedbackController) GetByInterview(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	interviewID := ctx.Param("interview_id")

	feedback, err := c.feedbackService.GetByInterviewAndUser(ctx.Request.Context(), interviewID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Feedback not found"})
			return
		}
		log.Error().Err(err).Str("interviewID", interviewID).Str("userID", user.ID).Msg("GetByInterview: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch feedback"})
		return
	}
	ctx.JSON(http.StatusOK, feedback)
}
