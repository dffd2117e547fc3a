package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inquire/internal/pipeline"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Run the full pipeline: submit, extract, verify, compile",
	Long: `Run executes every stage for a prompt and leaves all artifacts in the
run directory:

  prompt.txt         the submitted prompt
  report.md          the raw research report
  citations.json     extracted citations
  claims.json        extracted claims
  verification.json  per-claim verification results
  final.md           the annotated report

Example:
  inquire run "lithium supply outlook through 2030"
  inquire run --file prompt.txt --out runs/lithium --stream
  inquire run "GLP-1 drugs and food demand" --provider ollama --offline`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&outDir, "out", "", "run directory (default: runs/<timestamp>)")
	runCmd.Flags().StringVar(&promptFile, "file", "", "read the prompt from a file instead of arguments")
	runCmd.Flags().BoolVar(&streamOut, "stream", false, "print report text as it arrives")
	runCmd.Flags().StringVar(&providerName, "provider", "gemini", "research provider (gemini, openai, ollama)")
	runCmd.Flags().StringVar(&modelName, "model", "", "research model name (provider default if empty)")

	addVerifyFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(args)
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = defaultRunDir()
	}

	cfg := buildVerifyConfig()
	provider, err := resolveProvider(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", provider.Name())
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg, provider)
	if err := p.Run(context.Background(), prompt, outDir, streamOut); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}
