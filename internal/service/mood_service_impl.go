package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/google/uuid"
)

const (
	MinMoodRating    = 1
	MaxMoodRating    = 5
	MaxMoodTags      = 5
	MaxMoodNoteRunes = 200
)

type moodService struct {
	cycles   CycleService
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewMoodService(cycles CycleService, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) MoodService {
	return &moodService{
		cycles:   cycles,
		uow:      uow,
		clock:    clockOrDefault(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Log records the day's mood, replacing any earlier entry for the date.
func (s *moodService) Log(ctx context.Context, user *domain.User, req contract.MoodRequest) (resp *contract.MoodResponse, err error) {
	fields := map[string]any{"user_id": user.ID}
	done := observe(ctx, s.observer, "log-mood", s.clock, fields)
	defer func() { done(err) }()

	if req.Rating < MinMoodRating || req.Rating > MaxMoodRating {
		return nil, domain.Validationf("Rating must be between %d and %d", MinMoodRating, MaxMoodRating)
	}
	tags, err := cleanTags(req.Tags)
	if err != nil {
		return nil, err
	}
	note := ""
	if strings.TrimSpace(req.Note) != "" {
		if note, err = cleanText("Note", req.Note, 0, MaxMoodNoteRunes); err != nil {
			return nil, err
		}
	}
	dateLocal, err := resolveDate(req.Date, user.Timezone, s.clock())
	if err != nil {
		return nil, err
	}
	fields["date_local"] = dateLocal
	fields["rating"] = req.Rating

	if _, err := s.cycles.GetOrCreate(ctx, user.ID, dateLocal); err != nil {
		return nil, err
	}

	now := s.clock()
	mood := &domain.MoodLog{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		DateLocal: dateLocal,
		Rating:    req.Rating,
		Tags:      tags,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLMoodRepo(tx).Replace(ctx, mood); err != nil {
			return err
		}
		return repository.NewSQLDailyStatusRepo(tx).MarkMood(ctx, user.ID, dateLocal, now)
	})
	if err != nil {
		return nil, err
	}

	return &contract.MoodResponse{
		Saved:     true,
		DateLocal: dateLocal,
		Rating:    mood.Rating,
		Tags:      mood.Tags,
		Note:      mood.Note,
	}, nil
}

func cleanTags(in []string) ([]string, error) {
	if len(in) > MaxMoodTags {
		return nil, domain.Validationf("At most %d mood tags are allowed", MaxMoodTags)
	}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
