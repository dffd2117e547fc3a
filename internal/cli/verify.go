package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"inquire/internal/model"
	"inquire/internal/pipeline"
)

var (
	concurrency   int
	fetchTimeout  time.Duration
	userAgent     string
	maxBytes      int64
	useCache      bool
	insecureTLS   bool
	offline       bool
	stripHTML     bool
	respectRobots bool
	ratePerSec    float64
	httpProxy     string
	httpsProxy    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claims.json>",
	Short: "Verify extracted claims against their cited sources",
	Long: `Verify fetches the first cited source of each claim and checks whether
the claim's key terms (numbers, quoted phrases, proper nouns) appear in
the source body. Fetches run concurrently up to --concurrency, each with
its own timeout.

Statuses: supported, partial, not_found, inaccessible, paywall, skipped.

It writes verification.json next to the claims file.

Example:
  inquire verify runs/realestate/claims.json
  inquire verify claims.json --concurrency 10 --strip-html
  inquire verify claims.json --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	addVerifyFlags(verifyCmd)
}

// addVerifyFlags registers the source-fetching flags shared with run/batch.
func addVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&concurrency, "concurrency", 5, "max simultaneous source fetches")
	cmd.Flags().DurationVar(&fetchTimeout, "timeout", 10*time.Second, "per-source fetch timeout")
	cmd.Flags().StringVar(&userAgent, "ua", "inquire/0.1", "HTTP User-Agent")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per source")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache fetched source bodies across runs")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip fetching entirely; every claim verifies as skipped")
	cmd.Flags().BoolVar(&stripHTML, "strip-html", false, "reduce HTML sources to visible text before matching")
	cmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "honor robots.txt when fetching sources")
	cmd.Flags().Float64Var(&ratePerSec, "rps", 0, "per-domain requests per second (0 disables rate limiting)")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// buildVerifyConfig resolves the source-fetching flags into a Config.
func buildVerifyConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = fetchTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Verify.MaxConcurrent = concurrency
	cfg.Verify.Offline = offline
	cfg.Verify.StripHTML = stripHTML
	cfg.Verify.RespectRobots = respectRobots
	cfg.Verify.RequestsPerSecond = ratePerSec
	cfg.Cache.Enabled = useCache
	cfg.Output.Verbose = verbose
	return cfg
}

func runVerify(cmd *cobra.Command, args []string) error {
	claimsPath := args[0]
	cfg := buildVerifyConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Claims:      %s\n", claimsPath)
		fmt.Fprintf(os.Stderr, "Concurrency: %d\n", cfg.Verify.MaxConcurrent)
		fmt.Fprintf(os.Stderr, "Timeout:     %v\n", cfg.HTTP.Timeout)
		fmt.Fprintf(os.Stderr, "Cache:       %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg, nil)
	verification, err := p.Verify(context.Background(), claimsPath)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Verified %d claims\n", verification.TotalVerified)
	for _, status := range []string{"supported", "partial", "not_found", "contradicted", "inaccessible", "paywall", "skipped"} {
		if n := verification.Summary[status]; n > 0 {
			fmt.Fprintf(os.Stderr, "  %-13s %d\n", status+":", n)
		}
	}
	return nil
}
