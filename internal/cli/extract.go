package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inquire/internal/model"
	"inquire/internal/pipeline"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <report.md>",
	Short: "Extract citations and claims from a report",
	Long: `Extract scans a markdown research report for:
- Source citations (every http/https URL, with its section and context)
- Checkable claims (sentences long enough to carry a factual statement,
  classified by type and confidence)

It writes citations.json and claims.json next to the report.

Example:
  inquire extract runs/realestate/report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	reportPath := args[0]

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	p := pipeline.New(cfg, nil)
	citations, claims, err := p.Extract(reportPath)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Extracted %d citations from %d domains\n",
		citations.TotalCitations, citations.UniqueDomains)
	fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", claims.TotalClaims)
	if verbose {
		fmt.Fprintf(os.Stderr, "  Confidence: high=%d medium=%d low=%d uncertain=%d\n",
			claims.ByConfidence.High, claims.ByConfidence.Medium,
			claims.ByConfidence.Low, claims.ByConfidence.Uncertain)
		fmt.Fprintf(os.Stderr, "  Types: factual=%d prediction=%d opinion=%d definition=%d\n",
			claims.ByType.Factual, claims.ByType.Prediction,
			claims.ByType.Opinion, claims.ByType.Definition)
	}
	return nil
}
