package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/bimta/bimta-api/api/swagger"
	"github.com/bimta/bimta-api/internal/handler"
	"github.com/bimta/bimta-api/internal/middleware"
	"github.com/bimta/bimta-api/internal/repository"
	"github.com/bimta/bimta-api/internal/service"
	"github.com/bimta/bimta-api/pkg/cache"
	"github.com/bimta/bimta-api/pkg/config"
	"github.com/bimta/bimta-api/pkg/database"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
	"github.com/bimta/bimta-api/pkg/logger"
	corsmiddleware "github.com/bimta/bimta-api/pkg/middleware/cors"
	reqidmiddleware "github.com/bimta/bimta-api/pkg/middleware/requestid"
	securemiddleware "github.com/bimta/bimta-api/pkg/middleware/secure"
	"github.com/bimta/bimta-api/pkg/response"
	"github.com/bimta/bimta-api/pkg/storage"
)

// @title BIMTA API
// @version 1.0.0
// @description Admin backend for thesis advising
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var limiter *service.LoginThrottle
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, login throttling disabled", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		limiter = service.NewLoginThrottle(cache.NewCounter(redisClient, "login:"), cfg.LoginThrottle.MaxAttempts, cfg.LoginThrottle.Window)
	}

	photos, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
	if err != nil {
		logr.Fatal("failed to prepare upload directory", zap.Error(err))
	}
	documents, err := storage.NewObjectStorage(cfg.ObjectStorage)
	if err != nil {
		logr.Fatal("failed to init object storage", zap.Error(err))
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	accountRepo := repository.NewAccountRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	advisingRepo := repository.NewAdvisingRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authConfig := service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	}
	authSvc := service.NewAuthService(accountRepo, limiter, metrics, validate, logr, authConfig)
	accountSvc := service.NewAccountService(accountRepo, photos, cfg.Uploads.MaxPhotoSize, validate, logr)
	referenceSvc := service.NewReferenceService(referenceRepo, documents, cfg.Uploads.MaxDocumentSize, validate, logr)
	advisingSvc := service.NewAdvisingService(advisingRepo, logr)
	dashboardSvc := service.NewDashboardService(accountRepo, referenceRepo, advisingRepo, logr)
	reportSvc := service.NewReportService(reportRepo, metrics, validate, logr)
	exportSvc := service.NewExportService(reportRepo, metrics, validate, logr, nil, nil, nil)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logr.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		response.Error(c, appErrors.ErrInternal)
		c.Abort()
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(securemiddleware.Headers())
	r.Use(middleware.Metrics(metrics))

	r.Static(photos.PublicPath(), photos.Dir())

	registerRoutes(r, routeHandlers{
		auth:       handler.NewAuthHandler(authSvc),
		accounts:   handler.NewAccountHandler(accountSvc, cfg.Uploads.MaxPhotoSize),
		references: handler.NewReferenceHandler(referenceSvc, cfg.Uploads.MaxDocumentSize),
		advising:   handler.NewAdvisingHandler(advisingSvc),
		dashboard:  handler.NewDashboardHandler(dashboardSvc),
		reports:    handler.NewReportHandler(reportSvc, exportSvc),
		metrics:    handler.NewMetricsHandler(metrics),
	}, authSvc, routeOptions{prefix: cfg.APIPrefix, docs: cfg.Env != config.EnvProduction})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
}
