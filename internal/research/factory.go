package research

import (
	"fmt"
	"strings"
)

// NewProvider selects a provider from configuration. An empty provider name
// returns nil, nil: research is disabled and only the file-driven stages
// are available.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "gemini", "google":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown research provider: %s (supported: gemini, openai, ollama)", config.Provider)
	}
}
