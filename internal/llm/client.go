package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the backend looks reachable and configured.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider. It returns ErrMissingAPIKey
// when no credential is configured.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	case ProviderOpenRouter, "":
		return NewOpenRouterClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// taskParams resolves temperature and token limits for a request.
func (c LLMConfig) taskParams(req GenerateRequest) (float64, int) {
	taskCfg := c.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

// classifyError maps the last attempt's failure onto the package sentinels.
func classifyError(ctx context.Context, lastErr error) error {
	switch {
	case ctx.Err() != nil || errors.Is(lastErr, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(lastErr):
		return ErrUnavailable
	case errors.Is(lastErr, ErrInvalidOutput):
		return lastErr
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrMissingAPIKey):
		return "NO_API_KEY"
	default:
		return "UNKNOWN"
	}
}

// ErrorCode returns the short code used in logs for an LLM error.
func ErrorCode(err error) string {
	return errorCode(err)
}
