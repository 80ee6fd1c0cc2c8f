package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/emergency-alert-service/environments"
	"github.com/onurcolak/emergency-alert-service/handlers"
	"github.com/onurcolak/emergency-alert-service/internal/repository"
	"github.com/onurcolak/emergency-alert-service/internal/service"
	"github.com/onurcolak/emergency-alert-service/pkg/database"
	"github.com/onurcolak/emergency-alert-service/pkg/gemini"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
	"github.com/onurcolak/emergency-alert-service/pkg/redis"
	"github.com/onurcolak/emergency-alert-service/pkg/twilio"
	"github.com/onurcolak/emergency-alert-service/pkg/validator"
	"github.com/onurcolak/emergency-alert-service/pkg/webhook"
	"github.com/onurcolak/emergency-alert-service/routes"

	_ "github.com/onurcolak/emergency-alert-service/docs" // swagger docs
)

// @title Emergency Alert Service API
// @version 1.0
// @description Broadcasts emergency SMS alerts with a map link to registered contacts

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

// @schemes http https
func main() {
	cfg := environments.Load()

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	// Hard-fail if the SMS provider is not configured
	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" {
		logger.Fatalf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN are required but not set")
	}
	if cfg.Twilio.FromNumber == "" {
		logger.Fatalf("TWILIO_PHONE_NUMBER is required but not set")
	}
	if cfg.Gemini.APIKey == "" {
		logger.Warnf("API_KEY is not set, /api/chat will return errors")
	}

	logger.Infof("Starting Emergency Alert Service...")

	// Init DB
	db, err := database.NewDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		seeded, err := database.SeedTestData(context.Background(), db, environments.GetEnv("SEED_USER_ID", "demo-user"))
		if err != nil {
			logger.Warnf("Failed to seed test data: %v", err)
		} else {
			logger.Infof("Seeded %d contacts", seeded)
		}
	}

	// Init redis; broadcast lookups are disabled without it
	var (
		redisClient *redis.Client
		cache       service.BroadcastCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewRedisClient(cfg.Redis, cfg.Alert.ResultTTL)
		if err != nil {
			logger.Warnf("Redis not available, broadcast cache disabled: %v", err)
			redisClient = nil
		} else {
			cache = redisClient
		}
	}

	var notifier service.FailureNotifier
	if cfg.Alert.FailureWebhookURL != "" {
		webhookClient := webhook.NewWebhookClient(cfg.Alert.FailureWebhookURL, 10*time.Second)
		notifier = webhookClient
		logger.Infof("Failure webhook configured: %s", webhookClient.GetURL())
	}

	smsClient := twilio.NewClient(cfg.Twilio)
	logger.Infof("Sending alerts from %s", smsClient.From())

	contactRepo := repository.NewContactRepository(db)

	alertService := service.NewAlertService(contactRepo, smsClient, cache, notifier, cfg.Alert)
	contactService := service.NewContactService(contactRepo)
	chatService := service.NewChatService(gemini.NewClient(cfg.Gemini))

	healthHandler := handlers.NewHealthHandler(db, redisClient)
	alertHandler := handlers.NewAlertHandler(alertService)
	contactHandler := handlers.NewContactHandler(contactService)
	chatHandler := handlers.NewChatHandler(chatService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
	}))

	routes.RegisterRoutes(e, healthHandler, alertHandler, contactHandler, chatHandler)

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// in-flight broadcasts finish within the send timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Alert.SendTimeout+10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	logger.Infof("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}
