package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inquire/internal/model"
	"inquire/internal/pipeline"
	"inquire/internal/research"
)

var (
	outDir       string
	promptFile   string
	streamOut    bool
	providerName string
	modelName    string
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit [prompt]",
	Short: "Submit a research prompt and save the returned report",
	Long: `Submit sends a research prompt to the configured provider and writes
prompt.txt and report.md into the run directory.

The prompt is wrapped in a system prompt that instructs the model to cite
a source URL for every factual claim, so the later stages have something
to verify.

Example:
  inquire submit "impact of remote work on commercial real estate"
  inquire submit --file prompt.txt --out runs/realestate --stream
  inquire submit "quantum error correction progress" --provider openai`,
	Args: cobra.ArbitraryArgs,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&outDir, "out", "", "run directory (default: runs/<timestamp>)")
	submitCmd.Flags().StringVar(&promptFile, "file", "", "read the prompt from a file instead of arguments")
	submitCmd.Flags().BoolVar(&streamOut, "stream", false, "print report text as it arrives")

	// Provider flags
	submitCmd.Flags().StringVar(&providerName, "provider", "gemini", "research provider (gemini, openai, ollama)")
	submitCmd.Flags().StringVar(&modelName, "model", "", "research model name (provider default if empty)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(args)
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = defaultRunDir()
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	provider, err := resolveProvider(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", provider.Name())
		fmt.Fprintf(os.Stderr, "Output:   %s\n", outDir)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg, provider)
	report, err := p.Submit(context.Background(), prompt, outDir, streamOut)
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Received %d chars, saved to %s\n", len(report), outDir)
	return nil
}

// readPrompt resolves the prompt text from --file or positional arguments.
func readPrompt(args []string) (string, error) {
	if promptFile != "" {
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		prompt := strings.TrimSpace(string(data))
		if prompt == "" {
			return "", fmt.Errorf("prompt file is empty: %s", promptFile)
		}
		return prompt, nil
	}

	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return "", fmt.Errorf("no prompt given (pass it as an argument or use --file)")
	}
	return prompt, nil
}

// resolveProvider applies the provider flags, pulls the API key from the
// environment, and constructs the provider.
func resolveProvider(cfg *model.Config) (research.Provider, error) {
	if providerName != "" {
		cfg.Research.Provider = providerName
	}
	if modelName != "" {
		cfg.Research.Model = modelName
	}

	switch strings.ToLower(cfg.Research.Provider) {
	case "gemini", "google":
		cfg.Research.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.Research.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "openai":
		cfg.Research.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Research.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Research.BaseURL = baseURL
		}
	}

	provider, err := research.NewProvider(research.ConfigFromModel(cfg.Research))
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("no research provider configured")
	}
	return provider, nil
}
