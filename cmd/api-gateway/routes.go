package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bimta/bimta-api/internal/handler"
	"github.com/bimta/bimta-api/internal/middleware"
	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
	"github.com/bimta/bimta-api/pkg/response"
)

type routeHandlers struct {
	auth       *handler.AuthHandler
	accounts   *handler.AccountHandler
	references *handler.ReferenceHandler
	advising   *handler.AdvisingHandler
	dashboard  *handler.DashboardHandler
	reports    *handler.ReportHandler
	metrics    *handler.MetricsHandler
}

type routeOptions struct {
	prefix string
	docs   bool
}

func registerRoutes(r *gin.Engine, h routeHandlers, tokens middleware.TokenValidator, opts routeOptions) {
	if opts.prefix == "" {
		opts.prefix = "/api"
	}

	r.GET("/metrics", h.metrics.Prometheus)
	if opts.docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.prefix)
	api.GET("/health", h.metrics.Health)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.auth.Login)
	authGroup.GET("/profile", middleware.JWT(tokens), h.auth.Profile)

	admin := api.Group("", middleware.JWT(tokens), middleware.RequireRoles(models.RoleAdmin))

	admin.GET("/dashboard", h.dashboard.Summary)

	users := admin.Group("/users")
	users.GET("", h.accounts.List)
	users.GET("/:userId", h.accounts.Get)
	users.POST("", h.accounts.Create)
	users.PUT("/:userId", h.accounts.Update)
	users.PATCH("/:userId/reset-password", h.accounts.ResetPassword)
	users.DELETE("/:userId", h.accounts.Delete)

	references := admin.Group("/referensi")
	references.GET("", h.references.List)
	references.GET("/options", h.references.Options)
	references.GET("/:nim", h.references.Get)
	references.POST("", h.references.Create)
	references.PUT("/:nim", h.references.Update)
	references.DELETE("/:nim", h.references.Delete)

	sessions := admin.Group("/bimbingan")
	sessions.GET("", h.advising.List)
	sessions.GET("/:bimbinganId", h.advising.Get)

	reports := admin.Group("/laporan")
	reports.GET("/generate", h.reports.Generate)
	reports.GET("/export", h.reports.Export)
	reports.GET("/statistik", h.reports.Statistics)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrRouteNotFound)
	})
}
