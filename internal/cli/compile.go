package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inquire/internal/model"
	"inquire/internal/pipeline"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile <run-dir>",
	Short: "Compile the final annotated report from run artifacts",
	Long: `Compile merges the artifacts in a run directory into final.md:
a header with claim and verification counts, the original report body,
and a footer annotating each verified claim with its status badge.

report.md is required; the JSON artifacts are optional and default to
empty when absent.

Example:
  inquire compile runs/realestate`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	runDir := args[0]

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	p := pipeline.New(cfg, nil)
	final, err := p.Compile(runDir)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %s (%d chars)\n",
		filepath.Join(runDir, pipeline.FinalFile), len(final))
	return nil
}
