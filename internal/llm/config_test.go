package llm

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "openai" {
		t.Errorf("expected default provider openai, got %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("expected default model gpt-4.1-mini, got %q", cfg.OpenAI.Model)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("expected retries disabled by default, got MaxAttempts=%d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s call timeout, got %s", cfg.Timeout)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("PROOFPAL_LLM_PROVIDER", "anthropic")
	t.Setenv("PROOFPAL_ANTHROPIC_API_KEY", "test-key")
	t.Setenv("PROOFPAL_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv("PROOFPAL_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("PROOFPAL_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()

	if cfg.Provider != "anthropic" {
		t.Errorf("expected provider anthropic, got %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("expected anthropic key from env, got %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("expected anthropic model override, got %q", cfg.Anthropic.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected MaxAttempts 3, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %s", cfg.Timeout)
	}
}

func TestConfigFromEnv_FallsBackToStandardKeyVars(t *testing.T) {
	t.Setenv("PROOFPAL_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-standard")

	cfg := ConfigFromEnv()
	if cfg.OpenAI.APIKey != "sk-standard" {
		t.Errorf("expected fallback to OPENAI_API_KEY, got %q", cfg.OpenAI.APIKey)
	}
}

func TestConfigFromEnv_IgnoresBadValues(t *testing.T) {
	t.Setenv("PROOFPAL_LLM_MAX_ATTEMPTS", "zero")
	t.Setenv("PROOFPAL_LLM_TIMEOUT", "-5s")

	cfg := ConfigFromEnv()
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("expected unparsable attempts to keep the default, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected negative timeout to keep the default, got %s", cfg.Timeout)
	}
}

func TestValidate_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAI.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a missing openai key")
	}
}

func TestValidate_MockNeedsNoKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected mock provider to validate without credentials, got %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "bedrock"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for an unknown provider")
	}
}
