package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Runner executes one full research pipeline for a prompt.
type Runner interface {
	Run(ctx context.Context, prompt, outDir string, stream bool) error
}

// RunJob is one prompt scheduled on the pool.
type RunJob struct {
	Prompt string
	OutDir string
	Runner Runner
}

// Execute runs the pipeline for the job's prompt.
func (j *RunJob) Execute(ctx context.Context) Result {
	err := j.Runner.Run(ctx, j.Prompt, j.OutDir, false)
	return &RunResult{Prompt: j.Prompt, OutDir: j.OutDir, Error: err}
}

// RunResult is the outcome of one batch run.
type RunResult struct {
	Prompt string
	OutDir string
	Error  error
}

// GetError returns the run error, if any.
func (r *RunResult) GetError() error {
	return r.Error
}

// BatchProcessor drives several pipeline runs concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{runner: runner, concurrency: concurrency}
}

// ProcessPrompts runs the pipeline for each prompt, writing each run into a
// numbered subdirectory of baseDir.
func (b *BatchProcessor) ProcessPrompts(ctx context.Context, prompts []string, baseDir string) []*RunResult {
	if len(prompts) == 0 {
		return []*RunResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, prompt := range prompts {
		pool.Submit(&RunJob{
			Prompt: prompt,
			OutDir: filepath.Join(baseDir, fmt.Sprintf("run-%03d", i+1)),
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	runResults := make([]*RunResult, len(results))
	for i, result := range results {
		runResults[i] = result.(*RunResult)
	}
	return runResults
}

// ReadPromptsFromFile reads prompts from a file, one per line, skipping
// blank lines and # comments.
func ReadPromptsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var prompts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return prompts, nil
}
