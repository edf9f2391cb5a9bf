package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BLUUM_LLM_MODEL", "OPENROUTER_MODEL", "BLUUM_LLM_API_KEY",
		"OPENROUTER_API_KEY", "GEMINI_API_KEY", "BLUUM_LLM_PROVIDER", "BLUUM_LLM_RETRY_BACKOFF_MS",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_CoachingParameters(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.3, cfg.Tasks[TaskCoach].Temperature)
	assert.Equal(t, 500, cfg.Tasks[TaskCoach].MaxTokens)
	assert.Equal(t, 0.3, cfg.Tasks[TaskSafety].Temperature)
	assert.Equal(t, DefaultOpenRouterModel, cfg.EffectiveModel())
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BLUUM_LLM_TIMEOUT_MS", "9000")
	t.Setenv("BLUUM_LLM_SAFETY_TIMEOUT_MS", "15000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskSafety))
	assert.Equal(t, 10000, cfg.TaskTimeout(TaskCoach))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskType("unknown")))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BLUUM_LLM_COACH_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 10000, cfg.TaskTimeout(TaskCoach))
}

func TestLoadConfig_OpenRouterEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENROUTER_MODEL", "openai/gpt-4o-mini")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "or-key", cfg.APIKey)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.EffectiveModel())
}

func TestLoadConfig_GeminiProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BLUUM_LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg := LoadConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.APIKey)
	assert.Equal(t, DefaultGeminiModel, cfg.EffectiveModel())
}

func TestLoadConfig_UnknownProviderIgnored(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("BLUUM_LLM_PROVIDER", "ollama")

	assert.Equal(t, ProviderOpenRouter, LoadConfig().Provider)
}

func TestLoadConfig_RetryBackoff(t *testing.T) {
	clearLLMEnv(t)
	assert.Equal(t, 250, LoadConfig().RetryBackoffMs)

	t.Setenv("BLUUM_LLM_RETRY_BACKOFF_MS", "0")
	assert.Equal(t, 0, LoadConfig().RetryBackoffMs)

	t.Setenv("BLUUM_LLM_RETRY_BACKOFF_MS", "-5")
	assert.Equal(t, 250, LoadConfig().RetryBackoffMs)
}
