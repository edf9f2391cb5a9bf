package llm

import (
	"os"
	"strconv"
	"time"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskSafety TaskType = "safety"
	TaskCoach  TaskType = "coach"
)

// Provider names a model backend.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
)

const (
	DefaultOpenRouterEndpoint = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel    = "anthropic/claude-3-haiku-20240307"
	DefaultGeminiModel        = "gemini-2.0-flash"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	Referer    string
	AppTitle   string
	TimeoutMs  int
	MaxRetries int

	// RetryBackoffMs is the first delay between attempts; it doubles per retry.
	RetryBackoffMs int
	Tasks          map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig targeting OpenRouter. Calls still
// require an API key; without one the coaching pipeline uses fallbacks.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:        true,
		LogCalls:       false,
		Provider:       ProviderOpenRouter,
		Endpoint:       DefaultOpenRouterEndpoint,
		Referer:        "https://bluum.app",
		AppTitle:       "Bluum",
		TimeoutMs:      10000,
		MaxRetries:     1,
		RetryBackoffMs: 250,
		Tasks: map[TaskType]TaskConfig{
			TaskSafety: {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 8000},
			TaskCoach:  {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 10000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("BLUUM_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BLUUM_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BLUUM_LLM_PROVIDER"); v != "" {
		switch Provider(v) {
		case ProviderOpenRouter, ProviderGemini:
			cfg.Provider = Provider(v)
		}
	}
	if v := os.Getenv("BLUUM_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	cfg.Model = firstEnv("BLUUM_LLM_MODEL", "OPENROUTER_MODEL")
	cfg.APIKey = firstEnv("BLUUM_LLM_API_KEY", cfg.Provider.keyEnv())
	if v := os.Getenv("BLUUM_APP_URL"); v != "" {
		cfg.Referer = v
	}
	if v := os.Getenv("BLUUM_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("BLUUM_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	if v := os.Getenv("BLUUM_LLM_RETRY_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryBackoffMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskSafety, "BLUUM_LLM_SAFETY_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskCoach, "BLUUM_LLM_COACH_TIMEOUT_MS")

	return cfg
}

// EffectiveModel returns the configured model or the provider default.
func (c LLMConfig) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenRouterModel
}

func (c LLMConfig) retryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func (p Provider) keyEnv() string {
	if p == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENROUTER_API_KEY"
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
