package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"limaprices/adapters/excel"
	"limaprices/internal"
	"limaprices/internal/config"
	"limaprices/internal/dataset"
	"limaprices/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	// The table is loaded once; a bad dataset stops the process
	readerConfig := excel.DefaultExcelConfig()
	readerConfig.FilePath = appConfig.Data.File
	table, err := dataset.NewLoader(readerConfig, logger).Load()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	server, err := ui.NewServer(appConfig, table, logger)
	if err != nil {
		log.Fatalf("Failed to initialize UI server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("Server stopped")
}
