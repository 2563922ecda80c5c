package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chubrika/wineo-back/internal/apperr"
	coreauth "github.com/chubrika/wineo-back/internal/core/auth"
	"github.com/chubrika/wineo-back/internal/service"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthRequired verifies the bearer token and resolves its subject to a
// live user record; a valid token for a deleted user is still a 401.
func AuthRequired(j *coreauth.JWTer, users *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		u, err := users.Authenticate(c.Request.Context(), claims.UID)
		if err != nil {
			// A store failure is not the caller's fault; keep it a 500.
			code := apperr.Status(err)
			msg := "unauthorized"
			if code == http.StatusInternalServerError {
				msg = "internal server error"
			}
			c.AbortWithStatusJSON(code, gin.H{"error": msg})
			return
		}
		c.Set(KeyUserID, u.ID)
		c.Set(KeyRole, u.Role)
		c.Next()
	}
}

// RequireRole gates a group on the role resolved by AuthRequired.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
