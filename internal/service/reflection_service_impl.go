package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/bluum/internal/calendar"
	"github.com/alexanderramin/bluum/internal/coaching"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/messages"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/alexanderramin/bluum/internal/streak"
	"github.com/google/uuid"
)

const (
	MaxResponseRunes = 2000
	MaxAddendumRunes = 400
)

type reflectionService struct {
	cycles       CycleService
	reflections  repository.ReflectionRepo
	addenda      repository.AddendumRepo
	evaluator    ReflectionEvaluator
	uow          db.UnitOfWork
	clock        Clock
	lookbackDays int
	observer     UseCaseObserver
}

func NewReflectionService(
	cycles CycleService,
	reflections repository.ReflectionRepo,
	addenda repository.AddendumRepo,
	evaluator ReflectionEvaluator,
	uow db.UnitOfWork,
	clock Clock,
	lookbackDays int,
	observers ...UseCaseObserver,
) ReflectionService {
	if lookbackDays <= 0 {
		lookbackDays = streak.DefaultLookbackDays
	}
	return &reflectionService{
		cycles:       cycles,
		reflections:  reflections,
		addenda:      addenda,
		evaluator:    evaluator,
		uow:          uow,
		clock:        clockOrDefault(clock),
		lookbackDays: lookbackDays,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Submit stores the day's single reflection. Moderation and coaching run
// before the transaction; the reflection insert and the cycle flag commit
// together, and only while the day still shows the prompt that was
// answered. A swap landing during evaluation makes the reflection be
// evaluated again against the new prompt.
func (s *reflectionService) Submit(ctx context.Context, user *domain.User, req contract.ReflectRequest) (resp *contract.ReflectResponse, err error) {
	fields := map[string]any{"user_id": user.ID}
	done := observe(ctx, s.observer, "submit-reflection", s.clock, fields)
	defer func() { done(err) }()

	text, err := cleanText("Response text", req.ResponseText, 1, MaxResponseRunes)
	if err != nil {
		return nil, err
	}
	dateLocal, err := resolveDate(req.Date, user.Timezone, s.clock())
	if err != nil {
		return nil, err
	}
	fields["date_local"] = dateLocal

	// A day swaps at most once, so one retry covers every interleaving.
	var saved *savedReflection
	for attempt := 0; attempt < 2; attempt++ {
		saved, err = s.evaluateAndSave(ctx, user, dateLocal, text)
		if !errors.Is(err, errPromptMoved) {
			break
		}
		fields["prompt_moved"] = true
	}
	if errors.Is(err, errPromptMoved) {
		return nil, domain.ErrPromptChanged
	}
	if err != nil {
		return nil, err
	}
	ev, ref := saved.ev, saved.ref
	fields["safety_flagged"] = ev.Safety.Flagged
	fields["coach_degraded"] = ev.Coach != nil && ev.CoachOutcome.Degraded

	current, err := s.currentStreak(ctx, user.ID, dateLocal)
	if err != nil {
		return nil, err
	}

	resp = &contract.ReflectResponse{
		Saved:            true,
		DateLocal:        dateLocal,
		SafetyFlagged:    ev.Safety.Flagged,
		CurrentStreak:    current,
		TotalReflections: saved.totalBefore + 1,
	}
	if ev.Safety.Flagged {
		resp.SafeResponse = safeResponseView(coaching.SupportResponse())
		return resp, nil
	}
	resp.Coach = &contract.CoachView{
		Type: string(ref.CoachType),
		Text: *ref.CoachText,
		Scores: &contract.ScoresView{
			Specificity: ref.Scores.Specificity,
			Meaning:     ref.Scores.Meaning,
			Emotion:     ref.Scores.Emotion,
		},
	}
	resp.SuccessMessage = messages.Success(messages.SuccessContext{
		UserID:        user.ID,
		DateLocal:     dateLocal,
		TotalBefore:   saved.totalBefore,
		CurrentStreak: current,
	})
	return resp, nil
}

// errPromptMoved reports that the day's prompt changed between evaluation
// and commit.
var errPromptMoved = errors.New("prompt changed during evaluation")

type savedReflection struct {
	ref         *domain.Reflection
	ev          coaching.Evaluation
	totalBefore int
}

func (s *reflectionService) evaluateAndSave(ctx context.Context, user *domain.User, dateLocal, text string) (*savedReflection, error) {
	cycle, err := s.cycles.GetOrCreate(ctx, user.ID, dateLocal)
	if err != nil {
		return nil, err
	}
	if cycle.Status.HasReflection {
		return nil, domain.ErrReflectionExists
	}

	prompt := cycle.Status.Prompt
	ev := s.evaluator.Evaluate(ctx, coaching.Input{PromptText: prompt.PromptText, ResponseText: text})

	now := s.clock()
	ref := &domain.Reflection{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		DateLocal:    dateLocal,
		Prompt:       prompt,
		ResponseText: text,
		CoachType:    domain.CoachNone,
		CreatedAt:    now,
	}
	if !ev.Safety.Flagged && ev.Coach != nil {
		coachText := ev.Coach.CoachText
		scores := ev.Coach.Scores
		ref.CoachType = ev.Coach.CoachType
		ref.CoachText = &coachText
		ref.Scores = &scores
	}

	saved := &savedReflection{ref: ref, ev: ev}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReflections := repository.NewSQLReflectionRepo(tx)
		n, err := txReflections.Count(ctx, user.ID)
		if err != nil {
			return err
		}
		saved.totalBefore = n
		if err := txReflections.Create(ctx, ref); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.ErrReflectionExists
			}
			return err
		}
		ok, err := repository.NewSQLDailyStatusRepo(tx).MarkReflected(ctx, user.ID, dateLocal, prompt.PromptID, now)
		if err != nil {
			return err
		}
		if !ok {
			return errPromptMoved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// AddAddendum attaches the single follow-up note to today's reflection.
func (s *reflectionService) AddAddendum(ctx context.Context, user *domain.User, req contract.AddendumRequest) (resp *contract.AddendumResponse, err error) {
	fields := map[string]any{"user_id": user.ID}
	done := observe(ctx, s.observer, "add-addendum", s.clock, fields)
	defer func() { done(err) }()

	text, err := cleanText("Addendum text", req.Text, 1, MaxAddendumRunes)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	dateLocal, err := resolveDate(req.Date, user.Timezone, now)
	if err != nil {
		return nil, err
	}
	fields["date_local"] = dateLocal
	if dateLocal != calendar.DateLocal(now, user.Timezone) {
		return nil, domain.ErrAddendumNotToday
	}

	if _, err := s.reflections.Get(ctx, user.ID, dateLocal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNoReflectionForAddendum
		}
		return nil, err
	}

	add := &domain.ReflectionAddendum{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		DateLocal: dateLocal,
		Text:      text,
		CreatedAt: now,
	}
	if err := s.addenda.Create(ctx, add); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrAddendumExists
		}
		return nil, err
	}
	return &contract.AddendumResponse{Saved: true, DateLocal: dateLocal, Text: text}, nil
}

func (s *reflectionService) currentStreak(ctx context.Context, userID, asOf string) (int, error) {
	dates, err := s.reflections.ListDatesUpTo(ctx, userID, asOf)
	if err != nil {
		return 0, err
	}
	return streak.Current(streak.NewSet(dates), asOf, s.lookbackDays), nil
}

func safeResponseView(r coaching.SafetyResponse) *contract.SafeResponseView {
	view := &contract.SafeResponseView{
		Message:   r.Message,
		Resources: make([]contract.ResourceView, 0, len(r.Resources)),
	}
	for _, res := range r.Resources {
		view.Resources = append(view.Resources, contract.ResourceView{Label: res.Label, Value: res.Value})
	}
	return view
}
