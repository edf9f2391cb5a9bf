package service

import (
	"context"

	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/alexanderramin/bluum/internal/streak"
)

type streakService struct {
	reflections  repository.ReflectionRepo
	lookbackDays int
	clock        Clock
}

func NewStreakService(reflections repository.ReflectionRepo, lookbackDays int, clock Clock) StreakService {
	if lookbackDays <= 0 {
		lookbackDays = streak.DefaultLookbackDays
	}
	return &streakService{
		reflections:  reflections,
		lookbackDays: lookbackDays,
		clock:        clockOrDefault(clock),
	}
}

// Get reports streaks as of asOf (today when empty). Only the search for
// the nearest completed day is bounded by the lookback; runs are counted
// over the whole history up to asOf.
func (s *streakService) Get(ctx context.Context, user *domain.User, asOf string) (*contract.StreaksResponse, error) {
	dateLocal, err := resolveDate(asOf, user.Timezone, s.clock())
	if err != nil {
		return nil, err
	}
	dates, err := s.reflections.ListDatesUpTo(ctx, user.ID, dateLocal)
	if err != nil {
		return nil, err
	}
	total, err := s.reflections.Count(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	sum := streak.Summarize(dates, dateLocal, s.lookbackDays)
	return &contract.StreaksResponse{
		AsOf:             dateLocal,
		CurrentStreak:    sum.Current,
		LongestStreak:    sum.Longest,
		TotalReflections: total,
	}, nil
}
