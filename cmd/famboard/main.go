package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"famboard/internal/amqp"
	"famboard/internal/backend"
	"famboard/internal/config"
	apphttp "famboard/internal/http"
	"famboard/internal/log"
	"famboard/internal/services"
	"famboard/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := log.New(log.Config{Component: log.ComponentApp})
	log.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Build the family API data source
	srcCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Failed to build source configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateSource(context.Background(), srcCfg)
	if err != nil {
		logger.Error("Failed to initialize data source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Data source cleanup failed", "error", err)
			}
		}()
	}

	// Initialize the local report archive (optional)
	var archiver *services.ReportArchiver
	if cfg.SQLiteDBPath != "" {
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}

		// AMQP is optional; archiving still works without export sync
		var queue *amqp.Client
		if cfg.AMQPURL != "" {
			queue, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				logger.Warn("Failed to initialize AMQP client, continuing without export sync", "error", err)
			} else {
				logger.Info("Initialized AMQP client",
					"exchange", cfg.AMQPExchange,
					"queue", cfg.AMQPQueue)
			}
		}

		archiver = services.NewReportArchiver(result.Source, repo, queue, srcCfg.Session)
		defer func() {
			if err := archiver.Close(); err != nil {
				logger.Error("Archiver close failed", "error", err)
			}
		}()

		logger.Info("Initialized report archive",
			"db_path", cfg.SQLiteDBPath,
			"amqp_enabled", queue != nil)
	} else {
		logger.Info("Report archive disabled - no SQLITE_DB_PATH provided")
	}

	// A nil *ReportArchiver must not become a non-nil interface value.
	var archive services.BudgetArchive
	if archiver != nil {
		archive = archiver
	}

	dashboard := services.NewDashboardService(result.Source, archive, srcCfg.Session)

	srv := apphttp.NewServer(":"+cfg.Port, dashboard, archiver)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting famboard server", "port", cfg.Port, "source", cfg.DataSource)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
