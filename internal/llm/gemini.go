package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on the Google Gen AI SDK.
type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by the Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.taskParams(req)
	model := c.cfg.EffectiveModel()

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(temp)),
		MaxOutputTokens:  int32(maxTok),
		ResponseMIMEType: "application/json",
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	made := 0

	for i := 0; i < attempts; i++ {
		if i > 0 && !waitRetry(ctx, c.cfg.retryBackoff(), i) {
			break
		}
		made++
		resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.UserPrompt), config)
		if err == nil {
			text := strings.TrimSpace(resp.Text())
			if text != "" {
				latency := time.Since(start).Milliseconds()
				c.observer.OnCallComplete(LLMCallEvent{
					Task:      req.Task,
					Model:     model,
					LatencyMs: latency,
					Attempts:  made,
					Success:   true,
				})
				return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
			}
			err = fmt.Errorf("%w: empty candidate text", ErrInvalidOutput)
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	final := classifyError(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  made,
		Success:   false,
		ErrorCode: errorCode(final),
	})
	return nil, final
}

// Available reports whether a key is configured. The Gemini API has no
// cheap unauthenticated health endpoint.
func (c *geminiClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
