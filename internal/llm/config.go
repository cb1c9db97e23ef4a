package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects and configures the LLM provider.
type Config struct {
	// Provider is one of "openai", "anthropic", "gemini", "mock".
	Provider string

	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single outbound call. The upstream API has no
	// latency guarantee, so a request without a deadline can hang a
	// handler indefinitely.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4.1-mini"
	BaseURL string // Optional override for OpenAI-compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures the retry decorator. MaxAttempts of 1 disables
// retries entirely; a failed upstream call is surfaced immediately.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the standard configuration: OpenAI with the
// gpt-4.1-mini model, a 30 second call timeout and no retries.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4.1-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from PROOFPAL_* environment variables,
// falling back to the provider-standard key variables (OPENAI_API_KEY and
// friends) and then to defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("PROOFPAL_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.OpenAI.APIKey = firstEnv("PROOFPAL_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("PROOFPAL_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("PROOFPAL_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Anthropic.APIKey = firstEnv("PROOFPAL_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("PROOFPAL_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.Gemini.APIKey = firstEnv("PROOFPAL_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("PROOFPAL_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if n := os.Getenv("PROOFPAL_LLM_MAX_ATTEMPTS"); n != "" {
		if v, err := strconv.Atoi(n); err == nil && v > 0 {
			cfg.Retry.MaxAttempts = v
		}
	}
	if d := os.Getenv("PROOFPAL_LLM_TIMEOUT"); d != "" {
		if v, err := time.ParseDuration(d); err == nil && v > 0 {
			cfg.Timeout = v
		}
	}

	return cfg
}

// Validate checks that the selected provider has its credential set.
// Called at startup so a missing key fails the process before it starts
// serving, not on the first student request.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PROOFPAL_OPENAI_API_KEY (or OPENAI_API_KEY) is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("PROOFPAL_ANTHROPIC_API_KEY (or ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PROOFPAL_GEMINI_API_KEY (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "mock":
		// No credential needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
