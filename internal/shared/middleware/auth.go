package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/shared"
	"docmanager-backend/internal/shared/response"
	"docmanager-backend/pkg/jwt"
)

// AuthMiddleware - xác thực JWT access token từ header "Authorization: Bearer <token>"
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(shared.ContextKeyRequestID)).
				Msg("rejected access token")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(shared.ContextKeyUserID, claims.Subject)
		c.Set(shared.ContextKeyRole, claims.Role)
		c.Next()
	}
}
