package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/edu-enroll-api/api/swagger"
	"github.com/noah-isme/edu-enroll-api/internal/handler"
	"github.com/noah-isme/edu-enroll-api/internal/middleware"
	"github.com/noah-isme/edu-enroll-api/internal/repository"
	"github.com/noah-isme/edu-enroll-api/internal/service"
	"github.com/noah-isme/edu-enroll-api/internal/upstream"
	"github.com/noah-isme/edu-enroll-api/pkg/cache"
	"github.com/noah-isme/edu-enroll-api/pkg/config"
	"github.com/noah-isme/edu-enroll-api/pkg/jobs"
	"github.com/noah-isme/edu-enroll-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edu-enroll-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edu-enroll-api/pkg/middleware/requestid"
	"github.com/noah-isme/edu-enroll-api/pkg/storage"
)

// @title Course Enrollment Gateway
// @version 0.1.0
// @description Catalog, selection and application workflows for the institute site
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var cacheRepo *repository.CacheRepository
	if redisClient, redisErr := cache.NewRedis(cfg.Redis); redisErr != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", redisErr)
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	backend := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		HTTP:    &http.Client{Timeout: cfg.Upstream.Timeout},
		Logger:  logr,
	})

	metricsSvc := service.NewMetricsService()

	catalogSvc := service.NewCatalogService(backend, cacheRepo, metricsSvc, logr, service.CatalogServiceConfig{
		CacheTTL:            cfg.Catalog.CacheTTL,
		PlaceholderImageURL: cfg.Catalog.PlaceholderImageURL,
	})

	selectionSvc := service.NewSelectionService(cfg.Sessions.TTL, logr)
	stop := make(chan struct{})
	defer close(stop)
	selectionSvc.StartSweeper(cfg.Sessions.SweepInterval, stop)

	var receiptSvc *service.ReceiptService
	if cfg.Receipts.Enabled {
		store, err := storage.NewLocalStorage(cfg.Receipts.StorageDir)
		if err != nil {
			log.Fatalf("failed to init receipt storage: %v", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Receipts.SignedURLSecret, cfg.Receipts.SignedURLTTL)
		receiptSvc = service.NewReceiptService(store, signer, nil, logr)
		queue := jobs.NewQueue("receipts", receiptSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Receipts.WorkerConcurrency,
			MaxRetries: cfg.Receipts.WorkerRetries,
			Logger:     logr,
		})
		queue.Start(context.Background())
		defer queue.Stop()
		receiptSvc.AttachQueue(queue)
		receiptSvc.StartCleanup(cfg.Receipts.CleanupInterval, cfg.Receipts.SignedURLTTL, stop)
	}

	uploads := service.UploadLimits{
		StudentListMaxBytes: cfg.Uploads.StudentListMaxBytes,
		StudentListMIMEs:    cfg.Uploads.StudentListMIMEs,
		LogoMaxBytes:        cfg.Uploads.LogoMaxBytes,
	}
	applicationSvc := service.NewApplicationService(
		backend, catalogSvc, selectionSvc, receiptSvc, nil, logr, metricsSvc,
		service.PaymentOptions{
			Key:               cfg.Payment.Key,
			Currency:          cfg.Payment.Currency,
			DisplayName:       cfg.Payment.DisplayName,
			CheckoutScriptURL: cfg.Payment.CheckoutScriptURL,
			ThemeColor:        cfg.Payment.ThemeColor,
		},
		uploads,
	)

	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	selectionHandler := handler.NewSelectionHandler(selectionSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc, uploads)
	breadcrumbHandler := handler.NewBreadcrumbHandler()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(middleware.Session())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", catalogHandler.List)
		api.GET("/courses/referred-by", catalogHandler.ReferredBy)
		api.GET("/courses/:id", catalogHandler.Get)

		api.GET("/breadcrumbs", breadcrumbHandler.Derive)

		api.GET("/selection", selectionHandler.Get)
		api.PUT("/selection/user-type", selectionHandler.SetUserType)
		api.POST("/selection/select", selectionHandler.Select)
		api.POST("/selection/toggle", selectionHandler.Toggle)
		api.DELETE("/selection/:courseId", selectionHandler.Remove)
		api.DELETE("/selection", selectionHandler.Clear)

		api.POST("/applications/individual/:courseId", applicationHandler.SubmitIndividual)
		api.POST("/applications/individual/:courseId/confirm", applicationHandler.ConfirmPayment)
		api.POST("/applications/institution", applicationHandler.SubmitInstitution)
		if receiptSvc != nil {
			receiptHandler := handler.NewReceiptHandler(receiptSvc)
			api.GET("/applications/receipts/:token", receiptHandler.Download)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
