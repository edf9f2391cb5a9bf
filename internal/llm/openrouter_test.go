package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	cfg.RetryBackoffMs = 1
	return cfg
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{
		Model:   DefaultOpenRouterModel,
		Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}},
	})
}

func TestOpenRouterClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "https://bluum.app", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Bluum", r.Header.Get("X-Title"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultOpenRouterModel, req.Model)
		assert.Equal(t, 0.3, req.Temperature)
		assert.Equal(t, 500, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "classify this", req.Messages[0].Content)

		writeCompletion(w, "  {\"flagged\":false,\"reason\":\"none\"}\n")
	}))
	defer srv.Close()

	client := NewOpenRouterClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSafety,
		UserPrompt: "classify this",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"flagged":false,"reason":"none"}`, resp.Text)
	assert.Equal(t, DefaultOpenRouterModel, resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOpenRouterClient_Generate_SystemPromptAndOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, 0.0, req.Temperature)
		assert.Equal(t, 64, req.MaxTokens)
		assert.Equal(t, "custom/model", req.Model)
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Model = "custom/model"
	temp, maxTok := 0.0, 64

	client := NewOpenRouterClient(cfg, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskCoach,
		SystemPrompt: "be brief",
		UserPrompt:   "hi",
		Temperature:  &temp,
		MaxTokens:    &maxTok,
	})
	require.NoError(t, err)
}

func TestOpenRouterClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskSafety: {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 50},
	}

	client := NewOpenRouterClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSafety,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOpenRouterClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskSafety: {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 1000},
	}

	client := NewOpenRouterClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSafety,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenRouterClient_Generate_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewOpenRouterClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskCoach,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOpenRouterClient_Generate_NoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3

	client := NewOpenRouterClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskCoach,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOpenRouterClient_Generate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0

	client := NewOpenRouterClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskCoach, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestOpenRouterClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOpenRouterClient(testConfig(srv.URL), NoopObserver{}).Available(context.Background()))
	assert.False(t, NewOpenRouterClient(testConfig("http://127.0.0.1:1"), NoopObserver{}).Available(context.Background()))
}

func TestOpenRouterClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := NewOpenRouterClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskCoach,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, TaskCoach, captured.Task)
	assert.Equal(t, DefaultOpenRouterModel, captured.Model)
	assert.True(t, captured.Success)
	assert.Equal(t, 1, captured.Attempts)
}

func TestOpenRouterClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskCoach: {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 50},
	}

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOpenRouterClient(cfg, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskCoach,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewClient(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg.APIKey = "k"
	cfg.Provider = "carrier-pigeon"
	_, err = NewClient(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unknown llm provider")

	cfg.Provider = ProviderOpenRouter
	client, err := NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, "TIMEOUT", ErrorCode(ErrTimeout))
	assert.Equal(t, "UNAVAILABLE", ErrorCode(ErrUnavailable))
	assert.Equal(t, "INVALID_OUTPUT", ErrorCode(ErrInvalidOutput))
	assert.Equal(t, "NO_API_KEY", ErrorCode(ErrMissingAPIKey))
	assert.Equal(t, "UNKNOWN", ErrorCode(assert.AnError))
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

func TestOpenRouterClient_Generate_BacksOffBetweenAttempts(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1
	cfg.RetryBackoffMs = 80

	start := time.Now()
	_, err := NewOpenRouterClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{Task: TaskCoach, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestOpenRouterClient_Generate_DeadlineDuringBackoff(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3
	cfg.RetryBackoffMs = 500
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskCoach: {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 100},
	}

	_, err := NewOpenRouterClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{Task: TaskCoach, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOpenRouterClient_Generate_OversizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"m","choices":[{"message":{"role":"assistant","content":"`))
		w.Write([]byte(strings.Repeat("a", maxResponseBytes)))
		w.Write([]byte(`"}}]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0

	_, err := NewOpenRouterClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{Task: TaskCoach, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestRetryDelay(t *testing.T) {
	base := 250 * time.Millisecond
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 250 * time.Millisecond},
		{2, 500 * time.Millisecond},
		{3, time.Second},
		{10, maxBackoff},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, retryDelay(base, tt.attempt), "attempt %d", tt.attempt)
	}
	assert.Zero(t, retryDelay(0, 3))
}

func TestWaitRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, waitRetry(ctx, time.Hour, 1))
	assert.False(t, waitRetry(ctx, 0, 1))
	assert.True(t, waitRetry(context.Background(), time.Millisecond, 1))
}
