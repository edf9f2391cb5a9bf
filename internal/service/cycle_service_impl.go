package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/prompt"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/google/uuid"
)

// recentHistoryDays is how many prior days feed prompt rotation.
const recentHistoryDays = 5

type cycleService struct {
	statuses  repository.DailyStatusRepo
	histories repository.PromptHistoryRepo
	policy    *prompt.Policy
	uow       db.UnitOfWork
	clock     Clock
	observer  UseCaseObserver
}

func NewCycleService(
	statuses repository.DailyStatusRepo,
	histories repository.PromptHistoryRepo,
	policy *prompt.Policy,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) CycleService {
	return &cycleService{
		statuses:  statuses,
		histories: histories,
		policy:    policy,
		uow:       uow,
		clock:     clockOrDefault(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *cycleService) Today(ctx context.Context, user *domain.User, date string) (*contract.TodayResponse, error) {
	dateLocal, err := resolveDate(date, user.Timezone, s.clock())
	if err != nil {
		return nil, err
	}
	res, err := s.GetOrCreate(ctx, user.ID, dateLocal)
	if err != nil {
		return nil, err
	}
	st := res.Status
	return &contract.TodayResponse{
		DateLocal:           st.DateLocal,
		OnboardingCompleted: user.OnboardingCompleted(),
		HasReflected:        st.HasReflection,
		HasMood:             st.HasMood,
		Prompt:              contract.PromptView{ID: st.Prompt.PromptID, Text: st.Prompt.PromptText},
		DidSwapPrompt:       st.DidSwapPrompt,
		PrimaryCTA:          contract.PrimaryCTAReflect,
	}, nil
}

// GetOrCreate returns the day's state, creating it with a freshly selected
// prompt when absent. A concurrent creator that wins the unique key makes
// this call return the winner's row with IsNew false.
func (s *cycleService) GetOrCreate(ctx context.Context, userID, dateLocal string) (res *CycleResult, err error) {
	fields := map[string]any{"user_id": userID, "date_local": dateLocal}
	done := observe(ctx, s.observer, "get-or-create-cycle", s.clock, fields)
	defer func() { done(err) }()

	existing, err := s.statuses.Get(ctx, userID, dateLocal)
	if err == nil {
		fields["is_new"] = false
		return &CycleResult{Status: existing}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sc, err := s.selectionContext(ctx, userID, dateLocal)
	if err != nil {
		return nil, err
	}
	chosen := s.policy.Select(sc)

	now := s.clock()
	status := &domain.DailyStatus{
		ID:        uuid.New().String(),
		UserID:    userID,
		DateLocal: dateLocal,
		Prompt:    domain.PromptSnapshot{PromptID: chosen.ID, PromptText: chosen.Text},
		CreatedAt: now,
		UpdatedAt: now,
	}
	history := &domain.PromptHistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		DateLocal: dateLocal,
		PromptID:  chosen.ID,
		TagsUsed:  chosen.Tags,
		CreatedAt: now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLDailyStatusRepo(tx).Create(ctx, status); err != nil {
			return err
		}
		return repository.NewSQLPromptHistoryRepo(tx).Create(ctx, history)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		winner, getErr := s.statuses.Get(ctx, userID, dateLocal)
		if getErr != nil {
			return nil, fmt.Errorf("re-reading daily status after concurrent create: %w", getErr)
		}
		fields["is_new"] = false
		return &CycleResult{Status: winner}, nil
	}
	if err != nil {
		return nil, err
	}

	fields["is_new"] = true
	fields["prompt_id"] = chosen.ID
	return &CycleResult{Status: status, IsNew: true}, nil
}

func (s *cycleService) Swap(ctx context.Context, user *domain.User, date string) (resp *contract.SwapResponse, err error) {
	fields := map[string]any{"user_id": user.ID}
	done := observe(ctx, s.observer, "swap-prompt", s.clock, fields)
	defer func() { done(err) }()

	dateLocal, err := resolveDate(date, user.Timezone, s.clock())
	if err != nil {
		return nil, err
	}
	fields["date_local"] = dateLocal

	current, err := s.statuses.Get(ctx, user.ID, dateLocal)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrNoDailyStatus
	}
	if err != nil {
		return nil, err
	}
	if err := swapGuard(current); err != nil {
		return nil, err
	}

	sc, err := s.selectionContext(ctx, user.ID, dateLocal)
	if err != nil {
		return nil, err
	}
	alt, ok := s.policy.PickAlternate(current.Prompt.PromptID, sc)
	if !ok {
		return nil, domain.Conflictf("No alternative prompt available")
	}

	now := s.clock()
	snapshot := domain.PromptSnapshot{PromptID: alt.ID, PromptText: alt.Text}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStatuses := repository.NewSQLDailyStatusRepo(tx)
		swapped, err := txStatuses.SwapPrompt(ctx, user.ID, dateLocal, snapshot, now)
		if err != nil {
			return err
		}
		if !swapped {
			// Lost a race with another swap or a reflection.
			latest, err := txStatuses.Get(ctx, user.ID, dateLocal)
			if err != nil {
				return err
			}
			if guardErr := swapGuard(latest); guardErr != nil {
				return guardErr
			}
			return domain.ErrAlreadySwapped
		}
		return repository.NewSQLPromptHistoryRepo(tx).Replace(ctx, &domain.PromptHistoryEntry{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			DateLocal: dateLocal,
			PromptID:  alt.ID,
			TagsUsed:  alt.Tags,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	fields["from_prompt"] = current.Prompt.PromptID
	fields["to_prompt"] = alt.ID
	return &contract.SwapResponse{
		DateLocal:     dateLocal,
		Prompt:        contract.PromptView{ID: alt.ID, Text: alt.Text},
		DidSwapPrompt: true,
	}, nil
}

func swapGuard(st *domain.DailyStatus) error {
	if st.HasReflection {
		return domain.ErrSwapAfterReflection
	}
	if st.DidSwapPrompt {
		return domain.ErrAlreadySwapped
	}
	return nil
}

func (s *cycleService) selectionContext(ctx context.Context, userID, dateLocal string) (prompt.SelectionContext, error) {
	recent, err := s.histories.ListBefore(ctx, userID, dateLocal, recentHistoryDays)
	if err != nil {
		return prompt.SelectionContext{}, err
	}
	sc := prompt.SelectionContext{
		UserID:            userID,
		DateLocal:         dateLocal,
		RecentHistoryTags: make([]string, 0, len(recent)),
		RecentPromptIDs:   make([]string, 0, len(recent)),
	}
	for _, h := range recent {
		sc.RecentHistoryTags = append(sc.RecentHistoryTags, h.PrimaryTag())
		sc.RecentPromptIDs = append(sc.RecentPromptIDs, h.PromptID)
	}
	return sc, nil
}
