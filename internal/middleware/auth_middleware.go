package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/service"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "session"

const contextUserKey = "currentUser"

type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth gates a route group on a valid session cookie and injects the
// resolved user into the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}

		user, err := m.auth.VerifySession(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired session"})
			return
		}

		ctx.Set(contextUserKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user injected by RequireAuth, nil
// when the route was not guarded.
func CurrentUser(ctx *gin.Context) *dto.UserResponse {
	value, exists := ctx.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*dto.UserResponse)
	if !ok {
		return nil
	}
	return user
}
