package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token and stores the actor both on the
// gin context and on the request context handed to usecases.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if authHeader == "" || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthenticated.", nil)
			c.Abort()
			return
		}

		actor, err := authUC.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Code >= http.StatusInternalServerError {
				// lookup failure, not a bad token; ErrorHandler renders 500
				_ = c.Error(err)
				c.Abort()
				return
			}
			security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
				Event:       security.EventUnauthorizedAccess,
				SubjectType: "ip",
				IP:          c.ClientIP(),
				UserAgent:   c.GetHeader("User-Agent"),
				RequestID:   c.GetString(string(domain.KeyRequestID)),
				Details:     map[string]interface{}{"path": c.FullPath()},
			})
			response.Error(c, http.StatusUnauthorized, "Unauthenticated.", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), actor.UserID)
		c.Set(string(domain.KeyActor), actor)
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

// RequirePermission rejects callers lacking any of perms.
func RequirePermission(perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := domain.ActorFromContext(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthenticated.", nil)
			c.Abort()
			return
		}
		for _, p := range perms {
			if !actor.Can(p) {
				security.DefaultLogger().LogUserEvent(c.Request.Context(), security.EventUnauthorizedAccess,
					strconv.FormatInt(actor.UserID, 10), map[string]interface{}{"permission": p, "path": c.FullPath()})
				response.Error(c, http.StatusForbidden, "User does not have the right permissions.", nil)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// ActorKey extracts the authenticated user id for per-user rate limits.
func ActorKey(c *gin.Context) string {
	if actor, ok := domain.ActorFromContext(c.Request.Context()); ok {
		return strconv.FormatInt(actor.UserID, 10)
	}
	return c.ClientIP()
}
