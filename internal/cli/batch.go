package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inquire/internal/pipeline"
	"inquire/internal/worker"
)

var (
	batchWorkers int
	batchDir     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run the full pipeline for multiple prompts in parallel",
	Long: `Batch reads prompts from a file (one per line, # comments and blank
lines skipped) and runs the full pipeline for each, in parallel with a
configurable number of workers. Each run gets a numbered subdirectory
of the output directory.

Example:
  inquire batch prompts.txt
  inquire batch prompts.txt --workers 3 --output-dir ./research
  inquire batch prompts.txt --provider ollama --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchCmd,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 2, "number of concurrent pipeline runs")
	batchCmd.Flags().StringVar(&batchDir, "output-dir", "./inquire-runs", "base directory for run output")
	batchCmd.Flags().StringVar(&providerName, "provider", "gemini", "research provider (gemini, openai, ollama)")
	batchCmd.Flags().StringVar(&modelName, "model", "", "research model name (provider default if empty)")

	addVerifyFlags(batchCmd)
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	file := args[0]

	prompts, err := worker.ReadPromptsFromFile(file)
	if err != nil {
		return fmt.Errorf("read prompts: %w", err)
	}
	if len(prompts) == 0 {
		return fmt.Errorf("no prompts found in %s", file)
	}

	cfg := buildVerifyConfig()
	provider, err := resolveProvider(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Prompts:  %d\n", len(prompts))
	fmt.Fprintf(os.Stderr, "Workers:  %d\n", batchWorkers)
	fmt.Fprintf(os.Stderr, "Provider: %s\n", provider.Name())
	fmt.Fprintf(os.Stderr, "Output:   %s\n", batchDir)
	fmt.Fprintln(os.Stderr)

	p := pipeline.New(cfg, provider)
	processor := worker.NewBatchProcessor(p, batchWorkers)
	results := processor.ProcessPrompts(context.Background(), prompts, batchDir)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Prompt, result.Error)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %q -> %s\n", result.Prompt, result.OutDir)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total: %d  Success: %d  Failures: %d\n",
		len(results), successCount, failureCount)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d runs failed", failureCount, len(results))
	}
	return nil
}
