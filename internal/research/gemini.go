package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider produces reports with Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, config: config}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) model() string {
	if p.config.Model != "" {
		return p.config.Model
	}
	return "gemini-2.0-flash-thinking-exp"
}

func (p *GeminiProvider) generationConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if p.config.Temperature > 0 {
		cfg.Temperature = genai.Ptr(p.config.Temperature)
	}
	if p.config.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.config.MaxTokens)
	}
	return cfg
}

// Generate produces the complete report text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model(),
		genai.Text(FullPrompt(prompt)), p.generationConfig())
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

// GenerateStream streams the report, invoking onChunk per text fragment.
func (p *GeminiProvider) GenerateStream(ctx context.Context, prompt string, onChunk func(string)) (string, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	var full strings.Builder
	for chunk, err := range p.client.Models.GenerateContentStream(ctx, p.model(),
		genai.Text(FullPrompt(prompt)), p.generationConfig()) {
		if err != nil {
			return "", fmt.Errorf("Gemini stream error: %w", err)
		}
		if text := chunk.Text(); text != "" {
			full.WriteString(text)
			if onChunk != nil {
				onChunk(text)
			}
		}
	}

	if full.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return full.String(), nil
}
