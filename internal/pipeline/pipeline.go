// Package pipeline sequences the research-report verification stages:
// submit -> extract -> verify -> compile. Control flow is strictly staged
// and artifact-driven; each stage reads the previous stage's persisted
// output so partial re-runs work from files alone.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inquire/internal/compile"
	"inquire/internal/extract"
	"inquire/internal/model"
	"inquire/internal/verify"
	"inquire/internal/worker"
)

// Producer is the upstream text producer. The pipeline consumes only the
// final concatenated text; streaming is a delivery detail.
type Producer interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, onChunk func(string)) (string, error)
}

// Pipeline owns the artifact lifecycle for a run directory. Configuration
// is injected at construction; nothing is read from ambient state.
type Pipeline struct {
	cfg       *model.Config
	producer  Producer // nil unless the submit/run stages are used
	citations *extract.CitationExtractor
	claims    *extract.ClaimExtractor
	verifier  *verify.Verifier
}

// New creates a pipeline. producer may be nil for file-only stages
// (extract, verify, compile).
func New(cfg *model.Config, producer Producer) *Pipeline {
	var fetcher *verify.SourceFetcher
	if !cfg.Verify.Offline {
		fetcher = verify.NewSourceFetcher(cfg)
		if cfg.Verify.RequestsPerSecond > 0 {
			fetcher.SetLimiter(worker.NewLimiter(cfg.Verify.RequestsPerSecond, cfg.Verify.Burst))
		}
	}

	return &Pipeline{
		cfg:       cfg,
		producer:  producer,
		citations: extract.NewCitationExtractor(),
		claims:    extract.NewClaimExtractor(),
		verifier:  verify.NewVerifier(fetcher, cfg.Verify.MaxConcurrent),
	}
}

// Submit obtains the report text for prompt and persists both into outDir.
func (p *Pipeline) Submit(ctx context.Context, prompt, outDir string, stream bool) (string, error) {
	if p.producer == nil {
		return "", fmt.Errorf("no research provider configured")
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, PromptFile), []byte(prompt), 0o644); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	var report string
	var err error
	if stream {
		report, err = p.producer.GenerateStream(ctx, prompt, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Println()
	} else {
		report, err = p.producer.Generate(ctx, prompt)
	}
	if err != nil {
		return "", fmt.Errorf("research: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, ReportFile), []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return report, nil
}

// Extract runs both extractors over the persisted report and writes the
// citations and claims artifacts next to it.
func (p *Pipeline) Extract(reportPath string) (*model.CitationSet, *model.ClaimSet, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read report: %w", err)
	}
	text := string(data)
	outDir := filepath.Dir(reportPath)

	citations := p.citations.Extract(text, reportPath)
	claims := p.claims.Extract(text, reportPath)

	if err := writeJSON(filepath.Join(outDir, CitationsFile), citations); err != nil {
		return nil, nil, err
	}
	if err := writeJSON(filepath.Join(outDir, ClaimsFile), claims); err != nil {
		return nil, nil, err
	}
	return citations, claims, nil
}

// Verify checks every claim in the claims artifact against its first
// citation and writes the verification artifact next to it.
func (p *Pipeline) Verify(ctx context.Context, claimsPath string) (*model.VerificationSet, error) {
	claims, err := LoadClaims(claimsPath)
	if err != nil {
		return nil, err
	}

	verification := p.verifier.VerifyAll(ctx, claims, claimsPath)

	outDir := filepath.Dir(claimsPath)
	if err := writeJSON(filepath.Join(outDir, VerificationFile), verification); err != nil {
		return nil, err
	}
	return verification, nil
}

// Compile merges whatever artifacts exist in runDir into the final report
// and persists it. The report itself is required; the JSON artifacts
// default to empty structures when absent and fail the stage when corrupt.
func (p *Pipeline) Compile(runDir string) (string, error) {
	reportData, err := os.ReadFile(filepath.Join(runDir, ReportFile))
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}

	// Citations are validated but not consumed by the compiler; the final
	// report derives its counts from claims and verification only.
	var citations model.CitationSet
	if _, err := readOptionalJSON(filepath.Join(runDir, CitationsFile), &citations); err != nil {
		return "", err
	}

	var claims model.ClaimSet
	if _, err := readOptionalJSON(filepath.Join(runDir, ClaimsFile), &claims); err != nil {
		return "", err
	}

	verification := model.VerificationSet{Summary: map[string]int{}, Results: []model.VerificationResult{}}
	if _, err := readOptionalJSON(filepath.Join(runDir, VerificationFile), &verification); err != nil {
		return "", err
	}

	final, err := compile.Render(string(reportData), &claims, &verification, time.Now().UTC())
	if err != nil {
		return "", err
	}

	finalPath := filepath.Join(runDir, FinalFile)
	if err := os.WriteFile(finalPath, []byte(final), 0o644); err != nil {
		return "", fmt.Errorf("write final report: %w", err)
	}
	return final, nil
}

// Run executes the full pipeline: persist the prompt, obtain and persist
// the report, extract, verify, compile.
func (p *Pipeline) Run(ctx context.Context, prompt, outDir string, stream bool) error {
	progress := func(format string, a ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}

	progress("[run] Output: %s", outDir)

	progress("[run] Step 1/5: Submitting research...")
	report, err := p.Submit(ctx, prompt, outDir, stream)
	if err != nil {
		return err
	}
	progress("[run] Received %d chars", len(report))

	progress("[run] Step 2/5: Extracting citations and claims...")
	citations, claims, err := p.Extract(filepath.Join(outDir, ReportFile))
	if err != nil {
		return err
	}
	progress("[run] Found %d citations, %d claims", citations.TotalCitations, claims.TotalClaims)

	progress("[run] Step 3/5: Verifying claims...")
	verification, err := p.Verify(ctx, filepath.Join(outDir, ClaimsFile))
	if err != nil {
		return err
	}
	progress("[run] Verification: %v", verification.Summary)

	progress("[run] Step 4/5: Compiling final report...")
	final, err := p.Compile(outDir)
	if err != nil {
		return err
	}
	progress("[run] Step 5/5: Wrote %s (%d chars)", filepath.Join(outDir, FinalFile), len(final))

	return nil
}
