package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
	"github.com/spoorthi/outreach-ai/internal/di"
)

func main() {
	// Load .env if present so API keys can live outside the config file
	_ = godotenv.Load()

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
func run(
	logger *zap.Logger,
	runner *core.PipelineRunner,
	generator core.TextGenerator,
	runStore core.RunStore,
) error {
	defer logger.Sync()

	// Cancel the run on SIGINT/SIGTERM; in-flight state is persisted per
	// company so an interrupted run loses at most one company
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Warn("Received signal, stopping after current company", zap.String("signal", sig.String()))
		cancel()
	}()

	summary, err := runner.Run(ctx)

	// Close any resources that need closing
	if closer, ok := generator.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil {
			logger.Error("Failed to close generator", zap.Error(cerr))
		}
	}
	if closer, ok := runStore.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil {
			logger.Error("Failed to close run store", zap.Error(cerr))
		}
	}

	if err != nil {
		logger.Error("Run failed", zap.Error(err))
		return err
	}

	fmt.Printf("\n=== Run Summary ===\n")
	fmt.Printf("Total companies: %d\n", summary.TotalCompanies)
	fmt.Printf("Skipped (excluded locations): %d\n", summary.SkippedCompanies)
	fmt.Printf("Processed: %d\n", summary.ProcessedCompanies)
	fmt.Printf("Successful: %d\n", summary.SuccessfulCompanies)
	fmt.Printf("Failed: %d\n", summary.FailedCompanies)
	fmt.Printf("Contacts emailed: %d/%d\n", summary.SuccessfulContacts, summary.TotalContacts)
	return nil
}
