package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/middleware"
	"github.com/tdhoang/mockmate/internal/service"
)

type InterviewController struct {
	interviewService service.InterviewService
	cfg              *config.Config
}

func NewInterviewController(interviewService service.InterviewService, cfg *config.Config) *InterviewController {
	return &InterviewController{interviewService: interviewService, cfg: cfg}
}

// Create generates questions for the requested role and stores a finalized
// interview owned by the current user.
func (c *InterviewController) Create(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	var req dto.CreateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.cfg.AITimeout)
	defer cancel()

	interview, err := c.interviewService.Create(reqCtx, user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrMalformedAIResponse) || errors.Is(err, service.ErrCollaborator) {
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Question generation failed, please try again"})
			return
		}
		log.Error().Err(err).Str("userID", user.ID).Msg("Create: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create interview"})
		return
	}

	ctx.JSON(http.StatusCreated, interview)
}

// Get returns one interview with its questions.
func (c *InterviewController) Get(ctx *gin.Context) {
	id := ctx.Param("interview_id")
	interview, err := c.interviewService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Interview not found"})
			return
		}
		log.Error().Err(err).Str("interviewID", id).Msg("Get: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch interview"})
		return
	}
	ctx.JSON(http.StatusOK, interview)
}

// ListMine returns the current user's interviews, newest first.
func (c *InterviewController) ListMine(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	interviews, err := c.interviewService.ListByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("ListMine: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch interviews"})
		return
	}
	ctx.JSON(http.StatusOK, interviews)
}

// ListLatest returns other users' finalized interviews for the home view.
// Optional "limit" query param caps the page size.
func (c *InterviewController) ListLatest(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	interviews, err := c.interviewService.ListLatest(ctx.Request.Context(), user.ID, limit)
	if err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("ListLatest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch interviews"})
		return
	}
	ctx.JSON(http.StatusOK, interviews)
}
