package middleware

import (
	"github.com/gin-gonic/gin"

	"docmanager-backend/internal/shared"
	"docmanager-backend/internal/shared/response"
)

// AdminOnly chặn các request không có role admin (chạy sau AuthMiddleware)
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(shared.ContextKeyRole)
		if !exists || role != shared.RoleAdmin {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
