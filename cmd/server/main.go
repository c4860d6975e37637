package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/threadz/threadz-backend/config"
	"github.com/threadz/threadz-backend/internal/app/controller"
	"github.com/threadz/threadz-backend/internal/app/repository"
	"github.com/threadz/threadz-backend/internal/app/service"
	"github.com/threadz/threadz-backend/internal/middleware"
	"github.com/threadz/threadz-backend/internal/router"
	"github.com/threadz/threadz-backend/internal/scheduler"
	"github.com/threadz/threadz-backend/pkg/generation/openai"
	"github.com/threadz/threadz-backend/pkg/logger"
	"github.com/threadz/threadz-backend/pkg/payment/mockpay"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting THREADZ Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize external clients. A missing generation client is fine:
	// the design service falls back to its local heuristic.
	var generationClient service.GenerationClient
	openaiClient, err := openai.NewClient(openai.Config{
		APIKey:  cfg.Generation.APIKey,
		BaseURL: cfg.Generation.BaseURL,
		Timeout: cfg.Generation.RequestTimeout,
	})
	if err != nil {
		logger.Warn("Generation client unavailable, using fallback designs only", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		generationClient = openaiClient
	}

	mockpayClient, err := mockpay.NewClient(mockpay.Config{
		Provider: cfg.Payment.Mockpay.Provider,
		Delay:    cfg.Payment.Mockpay.Delay,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment client", err)
	}

	// Initialize services
	pricingService := service.NewPricingService(cfg.Pricing)
	catalogService := service.NewCatalogService()
	cartService := service.NewCartService(cartRepo, catalogService)
	designService := service.NewDesignService(generationClient, pricingService, cfg.Generation)
	checkoutService := service.NewCheckoutService(sessionRepo, orderRepo, cartService, mockpayClient)
	trackingService := service.NewTrackingService(orderRepo)

	// Initialize controllers
	productController := controller.NewProductController(catalogService)
	designController := controller.NewDesignController(designService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(trackingService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionRepo, cfg.Session)

	// Setup router
	r := router.NewRouter(
		productController,
		designController,
		cartController,
		checkoutController,
		orderController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the expired-session sweeper
	sessionScheduler := scheduler.NewSessionScheduler(sessionRepo, cfg.Session)
	if err := sessionScheduler.Start(); err != nil {
		logger.Fatal("Failed to start session scheduler", err)
	}
	defer sessionScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
