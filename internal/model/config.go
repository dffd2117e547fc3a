package model

import "time"

// Config is the explicit configuration passed into the pipeline at
// construction. Nothing in the pipeline reads ambient state; the CLI layer
// resolves flags, environment variables and the config file into this
// structure.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Verify   VerifyConfig   `yaml:"verify"`
	Cache    CacheConfig    `yaml:"cache"`
	Research ResearchConfig `yaml:"research"`
	Output   OutputConfig   `yaml:"output"`
}

// HTTPConfig controls source fetching during verification.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`        // Per-fetch timeout (default 10s)
	UserAgent    string        `yaml:"user_agent"`     // HTTP User-Agent
	MaxBodyBytes int64         `yaml:"max_body_bytes"` // Max response bytes read per source
	InsecureTLS  bool          `yaml:"insecure_tls"`   // Skip TLS certificate verification
	HTTPProxy    string        `yaml:"http_proxy"`     // Overrides HTTP_PROXY env var
	HTTPSProxy   string        `yaml:"https_proxy"`    // Overrides HTTPS_PROXY env var
	NoProxy      string        `yaml:"no_proxy"`
}

// VerifyConfig controls the claim verification stage.
type VerifyConfig struct {
	MaxConcurrent     int     `yaml:"max_concurrent"`      // Simultaneous in-flight fetches (default 5)
	Offline           bool    `yaml:"offline"`             // No HTTP client; every claim verifies as "skipped"
	StripHTML         bool    `yaml:"strip_html"`          // Reduce HTML sources to visible text before matching
	RespectRobots     bool    `yaml:"respect_robots"`      // Honor robots.txt when fetching sources
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Per-domain rate limit; 0 disables
	Burst             int     `yaml:"burst"`               // Rate limiter burst size
}

// CacheConfig controls caching of fetched source bodies within and across
// runs. Off by default; when enabled, a report citing the same URL in
// several claims fetches it once.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // Empty means <user cache dir>/inquire
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ResearchConfig selects and tunes the upstream text producer.
type ResearchConfig struct {
	Provider    string        `yaml:"provider"` // gemini, openai, ollama; empty disables submit/run
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"-"` // Never persisted; from GEMINI_API_KEY / OPENAI_API_KEY
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "inquire/0.1",
			MaxBodyBytes: 2_000_000,
		},
		Verify: VerifyConfig{
			MaxConcurrent: 5,
			Burst:         5,
		},
		Cache: CacheConfig{
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Research: ResearchConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash-thinking-exp",
			Timeout:     2 * time.Minute,
			Temperature: 0.7,
			MaxTokens:   8192,
		},
	}
}
