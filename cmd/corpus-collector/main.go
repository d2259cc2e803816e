package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgflow/constraint-analyzer/internal/adapters/collector"
	"github.com/orgflow/constraint-analyzer/internal/di"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(logger *zap.Logger, smtpCollector *collector.SMTPCollector) error {
	defer logger.Sync()

	// Start the collector
	if err := smtpCollector.Start(); err != nil {
		logger.Fatal("Failed to start collector", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the collector
	if err := smtpCollector.Stop(); err != nil {
		logger.Error("Failed to stop collector", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
