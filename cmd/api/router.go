package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docmanager-backend/internal/shared/middleware"
	"docmanager-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupDocumentRoutes(v1, c)
	}

	return router
}

// queueGuard - các route xóa qua queue cần admin token khi JWT_SECRET được set
func queueGuard(c *container.Container) []gin.HandlerFunc {
	if c.JWTManager == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.AuthMiddleware(c.JWTManager), middleware.AdminOnly()}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	author := v1.Group("/authors")
	{
		author.POST("", c.AuthorHandler.Create)
		author.GET("", c.AuthorHandler.GetAll)
		author.GET("/:id", c.AuthorHandler.GetByID)
		author.PUT("/:id", c.AuthorHandler.Update)
		author.DELETE("/:id", c.AuthorHandler.Delete)
		author.DELETE("/queue/:id", append(queueGuard(c), c.AuthorHandler.DeleteViaQueue)...)
	}
}

// ========================================
// DOCUMENT ROUTES
// ========================================
func setupDocumentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	document := v1.Group("/documents")
	{
		document.POST("", c.DocumentHandler.Create)
		document.GET("", c.DocumentHandler.GetAll)
		document.GET("/:id", c.DocumentHandler.GetByID)
		document.PUT("/:id", c.DocumentHandler.Update)
		document.DELETE("/:id", c.DocumentHandler.Delete)
		document.DELETE("/queue/:id", append(queueGuard(c), c.DocumentHandler.DeleteViaQueue)...)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := appCtx.HealthCheck(ctx)

		status := "ok"
		statusCode := http.StatusOK
		if db := services["database"]; db != "ok" && db != "memory" {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if services["redis"] != "ok" || services["cache"] != "ok" {
			// Không có broker thì không xóa qua queue được, CRUD vẫn chạy
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
