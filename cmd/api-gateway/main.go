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
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/scolarite-api/api/swagger"
	"github.com/noah-isme/scolarite-api/internal/handler"
	internalmiddleware "github.com/noah-isme/scolarite-api/internal/middleware"
	"github.com/noah-isme/scolarite-api/internal/repository"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/cache"
	"github.com/noah-isme/scolarite-api/pkg/config"
	"github.com/noah-isme/scolarite-api/pkg/database"
	"github.com/noah-isme/scolarite-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scolarite-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scolarite-api/pkg/middleware/requestid"
)

// @title Scolarite API
// @version 1.0.0
// @description Tuition balances, payments and enrollment records for the school portal.
// @BasePath /api/v1
// @schemes http https
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient redis.UniversalClient
	rc, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
	} else if rc != nil {
		redisClient = rc
		defer rc.Close()
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	inscriptionRepo := repository.NewInscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	programRepo := repository.NewProgramRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	feeResolver := service.NewFeeResolver(feeRepo, service.FeeResolverConfig{
		RegistrationKey:     cfg.Fees.RegistrationKey,
		DefaultRegistration: decimal.NewFromInt(cfg.Fees.DefaultRegistration),
		DefaultTuition:      decimal.NewFromInt(cfg.Fees.DefaultTuition),
	})
	aggregator := service.NewPaymentAggregator(paymentRepo, cfg.Fees.PaymentMatchMode)
	summarySvc := service.NewSummaryService(studentRepo, feeResolver, aggregator, metricsSvc, logr, service.SummaryServiceConfig{
		TermCount:            cfg.Fees.TermCount,
		Concurrency:          cfg.Fees.SummaryConcurrency,
		FallbackOnFailure:    cfg.Fees.FallbackOnFailure,
		FallbackRegistration: decimal.NewFromInt(cfg.Fees.DefaultRegistration),
		FallbackTuition:      decimal.NewFromInt(cfg.Fees.DefaultTuition),
	})
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)
	dashboardSvc := service.NewDashboardService(summarySvc, cacheSvc, logr, service.DashboardServiceConfig{
		CacheTTL:  cfg.Dashboard.CacheTTL,
		TermCount: cfg.Fees.TermCount,
	})
	paymentSvc := service.NewPaymentService(paymentRepo, studentRepo, dashboardSvc, metricsSvc, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(inscriptionRepo, studentRepo, dashboardSvc, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, feeResolver, dashboardSvc, validate, logr)
	programSvc := service.NewProgramService(programRepo, validate, logr)
	identitySvc := service.NewIdentityService(service.IdentityConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})

	var cachePinger handler.Pinger
	if redisClient != nil {
		cachePinger = handler.PingerFunc(cacheRepo.Ping)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.Pinger{
		"database": db,
		"cache":    cachePinger,
	})
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), routeDeps{
		logger:       logr,
		tokens:       identitySvc,
		balances:     handler.NewBalanceHandler(summarySvc),
		dashboard:    handler.NewDashboardHandler(dashboardSvc),
		payments:     handler.NewPaymentHandler(paymentSvc),
		inscriptions: handler.NewInscriptionHandler(enrollmentSvc),
		fees:         handler.NewFeeHandler(feeSvc),
		programs:     handler.NewProgramHandler(programSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "payment_match_mode", aggregator.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}
