package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/middleware"
	"github.com/tdhoang/mockmate/internal/service"
)

type AuthController struct {
	authService service.AuthService
	cfg         *config.Config
}

func NewAuthController(authService service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg}
}

// SignUp creates a new account. It does not sign the user in; the client is
// expected to follow up with a sign-in request.
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.authService.SignUp(ctx.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrValidation) {
			ctx.JSON(http.StatusConflict, dto.MessageResponse{Success: false, Message: "User already exists. Please sign in instead."})
			return
		}
		log.Error().Err(err).Msg("SignUp: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create account"})
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{Success: true, Message: "Account created successfully. Please sign in."})
}

// SignIn verifies credentials and sets the session cookie.
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, user, err := c.authService.SignIn(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, dto.MessageResponse{Success: false, Message: "Invalid email or password."})
			return
		}
		log.Error().Err(err).Msg("SignIn: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to sign in"})
		return
	}

	c.setSessionCookie(ctx, token, int(service.SessionLifetime.Seconds()))
	ctx.JSON(http.StatusOK, user)
}

// SignOut clears the session cookie.
func (c *AuthController) SignOut(ctx *gin.Context) {
	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Signed out successfully."})
}

// Me returns the authenticated user.
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", c.cfg.IsProduction(), true)
}
