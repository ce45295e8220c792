package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fincore/credit-service/internal/clients/clientdirectory"
	portssvc "github.com/fincore/credit-service/internal/core/ports/services"
	"github.com/fincore/credit-service/internal/core/services"
	"github.com/fincore/credit-service/internal/handlers"
	"github.com/fincore/credit-service/internal/middleware"
	"github.com/fincore/credit-service/internal/platform/resilience"
	"github.com/fincore/credit-service/internal/repositories/database/mongodb"
	"github.com/fincore/credit-service/pkg/config"
	"github.com/fincore/credit-service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the MongoDB client backing the credit store
	mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to initialize MongoDB client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseMongoClient(context.Background(), mongoClient)
	logger.Info("MongoDB connection established.")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	rateLimiter := limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  cfg.RateLimitPerMinute,
	})
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire the credit service: store, resolver, admission policy, and the
	// per-operation resilience boundary around the orchestrator.
	creditRepo := mongodb.NewCreditRepository(mongoClient.Database(cfg.MongoDatabase))
	clientResolver := clientdirectory.NewResolver(cfg.ClientServiceURL, cfg.ClientServiceTimeout)
	admissionPolicy := services.NewAdmissionPolicy(creditRepo)
	creditService := services.NewCreditService(creditRepo, clientResolver, admissionPolicy)
	resilientCreditService := services.NewResilientCreditService(creditService, cfg.OperationTimeout, resilience.Settings{
		MaxRequests:         cfg.BreakerMaxRequests,
		Interval:            cfg.BreakerInterval,
		OpenTimeout:         cfg.BreakerOpenTimeout,
		ConsecutiveFailures: cfg.BreakerConsecutiveFailures,
	}, logger)

	container := &portssvc.ServiceContainer{Credit: resilientCreditService}
	handlers.RegisterRoutes(r, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
