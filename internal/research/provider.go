// Package research wraps the upstream LLM providers that produce the raw
// research report. The rest of the pipeline treats the provider as an
// opaque text producer.
package research

import (
	"context"
	"time"

	"inquire/internal/model"
)

// SystemPrompt frames every research request so the produced report carries
// the structure the extractors expect: level-2 section headings, inline URL
// citations and [UNCERTAIN] flags on low-confidence statements.
const SystemPrompt = `You are a research assistant producing well-cited reports.

Requirements:
- Cite all factual claims with URLs
- Use markdown formatting
- Include an executive summary
- Flag low-confidence statements with [UNCERTAIN]
- Prefer primary sources over aggregators
- Include a "Sources" section at the end

Output format:
## Executive Summary
[2-3 sentence overview]

## Key Findings
[Numbered findings with inline citations]

## Analysis
[Detailed discussion]

## Risks and Unknowns
[Caveats and limitations]

## Sources
[Numbered list of all URLs cited]`

// Provider is a research text producer.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Generate produces the complete report text for a research prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateStream emits chunks as they arrive and returns the full
	// concatenated text.
	GenerateStream(ctx context.Context, prompt string, onChunk func(string)) (string, error)
}

// Config holds provider configuration.
type Config struct {
	Provider    string        // gemini, openai, ollama
	Model       string        // Provider-specific model name
	APIKey      string        // Gemini/OpenAI key
	BaseURL     string        // Custom endpoint (Ollama, OpenAI-compatible)
	Timeout     time.Duration // Per-request timeout
	Temperature float32
	MaxTokens   int // Max output tokens
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    "gemini",
		Model:       "gemini-2.0-flash-thinking-exp",
		Timeout:     2 * time.Minute,
		Temperature: 0.7,
		MaxTokens:   8192,
	}
}

// ConfigFromModel converts the pipeline configuration section.
func ConfigFromModel(cfg model.ResearchConfig) Config {
	return Config{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

// FullPrompt prepends the system prompt to a research request, for
// providers driven by a single combined prompt.
func FullPrompt(prompt string) string {
	return SystemPrompt + "\n\n---\n\nResearch Request:\n" + prompt
}
