package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/service"
	"github.com/tdhoang/mockmate/internal/tech"
)

type TechstackController struct {
	techstackService service.TechstackService
	cfg              *config.Config
}

func NewTechstackController(techstackService service.TechstackService, cfg *config.Config) *TechstackController {
	return &TechstackController{techstackService: techstackService, cfg: cfg}
}

// Suggestions returns AI tech-stack suggestions for a role/level pair,
// optionally narrowed by a search term. Query params: role, level, search.
func (c *TechstackController) Suggestions(ctx *gin.Context) {
	role := ctx.Query("role")
	level := ctx.Query("level")
	search := ctx.Query("search")

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.cfg.AITimeout)
	defer cancel()

	suggestions, err := c.techstackService.Suggest(reqCtx, role, level, search)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, dto.SuggestionsResponse{
				Success: false,
				Message: "Role and level are required.",
				Data:    []string{},
			})
			return
		}
		log.Error().Err(err).Str("role", role).Str("level", level).Msg("Suggestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.SuggestionsResponse{
			Success: false,
			Message: "Failed to fetch suggestions.",
			Data:    []string{},
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestionsResponse{Success: true, Data: suggestions})
}

// Logos resolves a comma-separated "tech" query param to icon and doc links.
// Unknown names come back with placeholders rather than errors.
func (c *TechstackController) Logos(ctx *gin.Context) {
	raw := ctx.Query("tech")
	var stack []string
	for _, entry := range strings.Split(raw, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			stack = append(stack, entry)
		}
	}

	logos := tech.Logos(stack)
	data := make([]dto.TechLogoDTO, 0, len(logos))
	for _, logo := range logos {
		data = append(data, dto.TechLogoDTO{Tech: logo.Tech, URL: logo.URL, Doc: logo.Doc})
	}
	ctx.JSON(http.StatusOK, dto.TechLogosResponse{Success: true, Data: data})
}
