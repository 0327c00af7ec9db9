package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	auth := middleware.AuthMiddleware(c.JWTManager)

	setupAuthRoutes(router, c)
	setupBookRoutes(router, c, auth)
	setupReviewRoutes(router, c, auth)
	setupSearchRoutes(router, c)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/signup", c.UserHandler.Signup)
	r.POST("/login", c.UserHandler.Login)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(r *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	books := r.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET("/:id", c.BookHandler.GetBookDetail)
		books.POST("", auth, c.BookHandler.CreateBook)
		books.POST("/:id/reviews", auth, c.ReviewHandler.CreateReview)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
// :id là book id - review được định danh bằng (caller, book)
func setupReviewRoutes(r *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	reviews := r.Group("/reviews")
	reviews.Use(auth)
	{
		reviews.PUT("/:id", c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// SEARCH ROUTES
// ========================================
func setupSearchRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/search", c.BookHandler.SearchBooks)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
				health["status"] = "degraded"
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
