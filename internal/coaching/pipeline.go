// Package coaching runs the two-stage moderation and coaching pass over a
// reflection. Every model failure degrades to a fixed fallback; callers
// never see an error from this package.
package coaching

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/llm"
)

//go:embed templates/*.md schemas.cue
var assets embed.FS

// Input is the reflection under evaluation.
type Input struct {
	PromptText   string
	ResponseText string
}

// Outcome reports how a stage produced its result.
type Outcome struct {
	Degraded bool
	Code     string // llm error code, or "DISABLED" without a client
}

// Stage describes one classify-or-fallback step: a prompt template, the
// CUE definition its output must satisfy, and the value used when the model
// call or validation fails.
type Stage[T any] struct {
	Name       string
	Task       llm.TaskType
	Template   string
	Definition string
	Fallback   T
}

// Pipeline holds the model client and compiled schemas. A nil client is
// valid and makes every stage return its fallback.
type Pipeline struct {
	client llm.LLMClient
	schema *Schema
	logger *slog.Logger
	safety Stage[SafetyResult]
	coach  Stage[CoachResult]
}

// New builds a Pipeline from the embedded templates and schemas.
func New(client llm.LLMClient, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	src, err := assets.ReadFile("schemas.cue")
	if err != nil {
		return nil, fmt.Errorf("reading coaching schemas: %w", err)
	}
	schema, err := LoadSchema(src)
	if err != nil {
		return nil, err
	}

	safetyTpl, err := assets.ReadFile("templates/safety_gate.md")
	if err != nil {
		return nil, fmt.Errorf("reading safety template: %w", err)
	}
	coachTpl, err := assets.ReadFile("templates/coach_reflection.md")
	if err != nil {
		return nil, fmt.Errorf("reading coach template: %w", err)
	}

	return &Pipeline{
		client: client,
		schema: schema,
		logger: logger,
		safety: Stage[SafetyResult]{
			Name:       "safety",
			Task:       llm.TaskSafety,
			Template:   string(safetyTpl),
			Definition: "#Safety",
			Fallback:   SafetyFallback(),
		},
		coach: Stage[CoachResult]{
			Name:       "coach",
			Task:       llm.TaskCoach,
			Template:   string(coachTpl),
			Definition: "#Coach",
			Fallback:   CoachFallback(),
		},
	}, nil
}

// Moderate runs the safety stage.
func (p *Pipeline) Moderate(ctx context.Context, in Input) (SafetyResult, Outcome) {
	return classify(ctx, p, p.safety, in)
}

// Coach runs the coaching stage. The returned text is always clipped.
func (p *Pipeline) Coach(ctx context.Context, in Input) (CoachResult, Outcome) {
	res, out := classify(ctx, p, p.coach, in)
	res.CoachText = ClipCoachText(res.CoachText)
	return res, out
}

// Evaluation is the combined result of both stages. Coach is nil when the
// safety stage flagged the reflection, in which case coaching never ran.
type Evaluation struct {
	Safety        SafetyResult
	SafetyOutcome Outcome
	Coach         *CoachResult
	CoachOutcome  Outcome
}

// Evaluate runs moderation and, unless it flags, coaching.
func (p *Pipeline) Evaluate(ctx context.Context, in Input) Evaluation {
	safety, safetyOut := p.Moderate(ctx, in)
	ev := Evaluation{Safety: safety, SafetyOutcome: safetyOut}
	if safety.Flagged {
		p.logger.InfoContext(ctx, "reflection_flagged", "reason", string(safety.Reason))
		return ev
	}
	coach, coachOut := p.Coach(ctx, in)
	ev.Coach = &coach
	ev.CoachOutcome = coachOut
	return ev
}

// classify fills the stage template, calls the model, validates the JSON
// against the stage definition and decodes it. Any failure yields the
// stage fallback.
func classify[T any](ctx context.Context, p *Pipeline, stage Stage[T], in Input) (T, Outcome) {
	if p.client == nil {
		p.logger.DebugContext(ctx, "coaching_disabled", "stage", stage.Name)
		return stage.Fallback, Outcome{Degraded: true, Code: "DISABLED"}
	}

	result, err := runStage(ctx, p, stage, in)
	if err != nil {
		code := llm.ErrorCode(err)
		p.logger.WarnContext(ctx, "coaching_degraded",
			"stage", stage.Name,
			"code", code,
			"error", err.Error(),
		)
		return stage.Fallback, Outcome{Degraded: true, Code: code}
	}
	return result, Outcome{}
}

func runStage[T any](ctx context.Context, p *Pipeline, stage Stage[T], in Input) (T, error) {
	var zero T

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:       stage.Task,
		UserPrompt: FillTemplate(stage.Template, in),
	})
	if err != nil {
		return zero, err
	}

	return llm.ExtractJSON[T](resp.Text, p.schema.Validator(stage.Definition))
}

// FillTemplate substitutes {{PROMPT}} and {{RESPONSE}} in a single pass, so
// placeholder text inside the user's reflection is left alone.
func FillTemplate(tpl string, in Input) string {
	return strings.NewReplacer(
		"{{PROMPT}}", in.PromptText,
		"{{RESPONSE}}", in.ResponseText,
	).Replace(tpl)
}

// SafetyResult is the moderation verdict.
type SafetyResult struct {
	Flagged bool                `json:"flagged"`
	Reason  domain.SafetyReason `json:"reason"`
}

// CoachResult is the rubric score plus the coaching line shown to the user.
type CoachResult struct {
	Scores    domain.RubricScores `json:"scores"`
	CoachType domain.CoachType    `json:"coachType"`
	CoachText string              `json:"coachText"`
}

// SafetyFallback does not flag, so an outage never blocks a reflection.
func SafetyFallback() SafetyResult {
	return SafetyResult{Flagged: false, Reason: domain.ReasonNone}
}

// CoachFallback is a neutral validation.
func CoachFallback() CoachResult {
	return CoachResult{
		Scores:    domain.RubricScores{Specificity: 1, Meaning: 1, Emotion: 1},
		CoachType: domain.CoachValidate,
		CoachText: "Thanks for taking a moment to reflect today.",
	}
}
