// Package main provides the main entry point for the Covercube quote adapter
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirphl/covercube-quote-adapter/app/handlers"
	"github.com/amirphl/covercube-quote-adapter/app/router"
	"github.com/amirphl/covercube-quote-adapter/app/services"
	businessflow "github.com/amirphl/covercube-quote-adapter/business_flow"
	"github.com/amirphl/covercube-quote-adapter/config"
	"github.com/gofiber/fiber/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Covercube quote adapter...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")

	for _, fn := range app.stopFuncs {
		fn()
	}
}

// initializeLogging routes the standard logger to stdout, a rotated file, or both.
// The returned function closes the log file.
func initializeLogging(cfg config.LoggingConfig) func() {
	log.SetFlags(log.LstdFlags | log.LUTC)

	if cfg.Output == "stdout" {
		return func() {}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	var out io.Writer = rotator
	if cfg.Output == "both" {
		out = io.MultiWriter(os.Stdout, rotator)
	}
	log.SetOutput(out)
	log.Printf("Logging to %s (max %d MB, %d backups, %d days)", cfg.FilePath, cfg.MaxSize, cfg.MaxBackups, cfg.MaxAge)

	return func() {
		if err := rotator.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	stopFuncs = append(stopFuncs, initializeLogging(cfg.Logging))

	// Initialize services
	covercubeClient := services.NewCovercubeClient(&cfg.Covercube)
	if cfg.Covercube.MockMode {
		log.Println("MOCK_COVERCUBE is enabled, carrier calls return canned quotes")
	} else {
		log.Printf("Covercube client initialized (timeout=%s)", cfg.Covercube.Timeout)
	}

	// Initialize flows
	quoteFlow := businessflow.NewQuoteFlow(
		covercubeClient,
		cfg.Covercube,
	)

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteFlow, cfg.Server.RequestTimeout)

	// Initialize router
	appRouter := router.NewFiberRouter(cfg, quoteHandler)

	fiberRouter, ok := appRouter.(*router.FiberRouter)
	if !ok {
		return nil, fmt.Errorf("unexpected router type %T", appRouter)
	}

	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
