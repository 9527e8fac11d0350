package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
	"github.com/spoorthi/outreach-ai/internal/di"
)

func main() {
	_ = godotenv.Load()

	flags := di.ParseFlags()
	if flags.FullName == "" || flags.Domain == "" {
		fmt.Println("Usage: email-finder -name \"Jane Doe\" -domain example.com [flags]")
		os.Exit(2)
	}

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run resolves one person's candidate addresses and prints them
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	resolver *core.EmailResolver,
) error {
	defer logger.Sync()

	candidates, err := resolver.Resolve(context.Background(), flags.FullName, flags.Domain)
	if err != nil {
		return err
	}

	if flags.JSONOutput {
		data, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("\n=== Candidates for %s @ %s ===\n", candidates.FullName, candidates.Domain)
	for _, email := range candidates.Candidates {
		fmt.Printf("  %s\n", email)
	}
	fmt.Printf("\nMost likely: %s (confidence: %s)\n", candidates.MostLikely, candidates.Confidence)
	if candidates.Note != "" {
		fmt.Printf("Note: %s\n", candidates.Note)
	}
	if len(candidates.SourceStatuses) > 0 {
		fmt.Printf("\nSource statuses:\n")
		for source, status := range candidates.SourceStatuses {
			fmt.Printf("  %s: %s\n", source, status)
		}
	}
	return nil
}
