package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/infrastructure/metrics"
	"toolsail-backend/internal/shared/middleware"
	"toolsail-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupToolRoutes(api, c)
		setupCategoryRoutes(api, c)
		setupSubmissionRoutes(api, c)
		setupBlogRoutes(api, c)
		setupPromotionRoutes(api, c)
		setupAdminRoutes(api, c)
		setupDevRoutes(api, c)
	}

	return router
}

// ========================================
// PUBLIC ROUTES
// ========================================

func setupToolRoutes(api *gin.RouterGroup, c *container.Container) {
	tools := api.Group("/tools")
	{
		tools.GET("", c.ToolHandler.List)
		tools.GET("/:id", c.ToolHandler.Get)
	}
}

func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container) {
	categories := api.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/tree", c.CategoryHandler.Tree)
		categories.GET("/:slug", c.CategoryHandler.GetBySlug)
	}
}

func setupSubmissionRoutes(api *gin.RouterGroup, c *container.Container) {
	// guest flow: PUT phát mã, POST nộp kèm mã
	submissions := api.Group("/submissions")
	{
		submissions.POST("", c.SubmissionHandler.Submit)
		submissions.PUT("", c.SubmissionHandler.SendCode)
	}

	user := api.Group("/user", middleware.AuthMiddleware(c.JWTManager))
	{
		user.POST("/submissions", c.SubmissionHandler.SubmitAsUser)
		user.GET("/submissions", c.SubmissionHandler.ListMine)
	}
}

func setupBlogRoutes(api *gin.RouterGroup, c *container.Container) {
	blog := api.Group("/blog")
	{
		blog.GET("/posts", c.BlogHandler.ListPosts)
		blog.GET("/posts/:slug", c.BlogHandler.GetPost)
		blog.GET("/categories", c.BlogHandler.ListCategories)
	}
}

func setupPromotionRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/promotions/active", c.PromotionPublicHandler.ListActive)
}

// ========================================
// ADMIN ROUTES
// ========================================

func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := api.Group("/admin",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(),
	)

	submissions := admin.Group("/submissions")
	{
		submissions.GET("", c.SubmissionHandler.List)
		submissions.GET("/:id", c.SubmissionHandler.Get)
		submissions.POST("/:id/approve", c.SubmissionHandler.Approve)
		submissions.POST("/:id/reject", c.SubmissionHandler.Reject)
		submissions.POST("/:id/request-changes", c.SubmissionHandler.RequestChanges)
	}

	tools := admin.Group("/tools")
	{
		tools.GET("", c.ToolHandler.AdminList)
		tools.GET("/export", c.ToolHandler.Export)
		tools.POST("", c.ToolHandler.Create)
		tools.PUT("/:id", c.ToolHandler.Update)
		tools.POST("/:id/publish", c.ToolHandler.Publish)
		tools.POST("/:id/unpublish", c.ToolHandler.Unpublish)
		tools.POST("/:id/logo", c.ToolHandler.UploadLogo)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", c.CategoryHandler.Create)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}

	blog := admin.Group("/blog")
	{
		blog.GET("/posts", c.BlogHandler.AdminListPosts)
		blog.POST("/posts", c.BlogHandler.CreatePost)
		blog.PUT("/posts/:id", c.BlogHandler.UpdatePost)
		blog.DELETE("/posts/:id", c.BlogHandler.DeletePost)
		blog.POST("/categories", c.BlogHandler.CreateCategory)
		blog.PUT("/categories/:id", c.BlogHandler.UpdateCategory)
		blog.DELETE("/categories/:id", c.BlogHandler.DeleteCategory)
	}

	promotions := admin.Group("/promotions")
	{
		promotions.GET("", c.PromotionAdminHandler.List)
		promotions.POST("", c.PromotionAdminHandler.Create)
		promotions.PATCH("/:id/status", c.PromotionAdminHandler.UpdateStatus)
		promotions.DELETE("/:id", c.PromotionAdminHandler.Delete)
	}
}

// ========================================
// DEV ROUTES
// ========================================

// setupDevRoutes: production không đăng ký route seed
func setupDevRoutes(api *gin.RouterGroup, c *container.Container) {
	if c.Config.IsProduction() || c.SeedHandler == nil {
		return
	}
	dev := api.Group("/dev", middleware.DevOnly(c.Config.IsProduction()))
	{
		dev.POST("/seed", c.SeedHandler.Seed)
		dev.DELETE("/seed", c.SeedHandler.Clear)
	}
}

// ========================================
// HEALTH
// ========================================

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		components := gin.H{}
		for name, check := range c.HealthChecks() {
			if err := check(checkCtx); err != nil {
				status = http.StatusServiceUnavailable
				components[name] = gin.H{"status": "down", "error": err.Error()}
				continue
			}
			components[name] = gin.H{"status": "up"}
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		ctx.JSON(status, gin.H{
			"status":     overall,
			"version":    c.Config.App.Version,
			"components": components,
			"timestamp":  time.Now().UTC(),
		})
	}
}
