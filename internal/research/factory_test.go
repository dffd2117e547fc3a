package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProvider_Selection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"

	tests := []struct {
		provider string
		name     string
	}{
		{"gemini", "gemini"},
		{"google", "gemini"},
		{"GEMINI", "gemini"},
		{"openai", "openai"},
		{"ollama", "ollama"},
	}

	for _, tt := range tests {
		cfg.Provider = tt.provider
		p, err := NewProvider(cfg)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.provider, err)
			continue
		}
		if p.Name() != tt.name {
			t.Errorf("%s: expected name %s, got %s", tt.provider, tt.name, p.Name())
		}
	}
}

func TestNewProvider_EmptyDisablesResearch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ""

	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("empty provider must yield nil, not a provider")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "carrier-pigeon"

	_, err := NewProvider(cfg)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Errorf("error should name the provider, got %v", err)
	}
}

func TestNewProvider_KeyRequired(t *testing.T) {
	for _, provider := range []string{"gemini", "openai"} {
		cfg := DefaultConfig()
		cfg.Provider = provider
		cfg.APIKey = ""

		if _, err := NewProvider(cfg); err == nil {
			t.Errorf("%s: expected error without API key", provider)
		}
	}

	// Ollama runs locally and needs no key
	cfg := DefaultConfig()
	cfg.Provider = "ollama"
	cfg.APIKey = ""
	if _, err := NewProvider(cfg); err != nil {
		t.Errorf("ollama: unexpected error %v", err)
	}
}

func TestFullPrompt(t *testing.T) {
	full := FullPrompt("solar adoption trends")

	if !strings.HasPrefix(full, SystemPrompt) {
		t.Error("full prompt must start with the system prompt")
	}
	if !strings.HasSuffix(full, "Research Request:\nsolar adoption trends") {
		t.Errorf("full prompt must end with the request, got %q", full[len(full)-60:])
	}
}

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("Generate must request a non-streaming response")
		}
		if req.System != SystemPrompt {
			t.Error("system prompt missing from request")
		}
		if !strings.Contains(req.Prompt, "solar adoption") {
			t.Errorf("prompt missing from request: %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "## Findings\nReport text.", Done: true})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Provider = "ollama"
	cfg.BaseURL = server.URL

	p, err := NewOllamaProvider(cfg)
	if err != nil {
		t.Fatal(err)
	}

	report, err := p.Generate(context.Background(), "solar adoption")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report != "## Findings\nReport text." {
		t.Errorf("unexpected report %q", report)
	}
}

func TestOllamaProvider_GenerateStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)
		_ = enc.Encode(ollamaResponse{Response: "part one "})
		_ = enc.Encode(ollamaResponse{Response: "part two"})
		_ = enc.Encode(ollamaResponse{Done: true})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL

	p, err := NewOllamaProvider(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var chunks []string
	report, err := p.GenerateStream(context.Background(), "prompt", func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	if report != "part one part two" {
		t.Errorf("unexpected concatenated report %q", report)
	}
	if len(chunks) != 2 {
		t.Errorf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
}

func TestOllamaProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL

	p, err := NewOllamaProvider(cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error from failing backend")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected backend error surfaced, got %v", err)
	}
}
