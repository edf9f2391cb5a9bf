package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/bluum/internal/domain"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by Create when the row's unique key is taken.
	ErrDuplicate = errors.New("duplicate")
)

// Creator inserts a new row, returning ErrDuplicate if one already exists
// for the same unique key.
type Creator[T any] interface {
	Create(ctx context.Context, v *T) error
}

// Replacer writes v whether or not a row exists for its unique key.
type Replacer[T any] interface {
	Replace(ctx context.Context, v *T) error
}

type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	// CreateIfAbsent inserts u unless its external id exists and reports
	// whether a row was written.
	CreateIfAbsent(ctx context.Context, u *domain.User) (bool, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
}

type DailyStatusRepo interface {
	Creator[domain.DailyStatus]
	Get(ctx context.Context, userID, dateLocal string) (*domain.DailyStatus, error)
	// SwapPrompt replaces the snapshot only while the day is unswapped and
	// unreflected. It reports false when the guard did not match.
	SwapPrompt(ctx context.Context, userID, dateLocal string, p domain.PromptSnapshot, at time.Time) (bool, error)
	// MarkReflected flags the day only while its prompt is still promptID
	// and no reflection is recorded. It reports false when the guard did not match.
	MarkReflected(ctx context.Context, userID, dateLocal, promptID string, at time.Time) (bool, error)
	MarkMood(ctx context.Context, userID, dateLocal string, at time.Time) error
}

type PromptHistoryRepo interface {
	Creator[domain.PromptHistoryEntry]
	Replacer[domain.PromptHistoryEntry]
	Get(ctx context.Context, userID, dateLocal string) (*domain.PromptHistoryEntry, error)
	// ListBefore returns up to limit entries dated before dateLocal, newest first.
	ListBefore(ctx context.Context, userID, dateLocal string, limit int) ([]*domain.PromptHistoryEntry, error)
}

type ReflectionRepo interface {
	Creator[domain.Reflection]
	Get(ctx context.Context, userID, dateLocal string) (*domain.Reflection, error)
	// ListDatesUpTo returns every reflection date on or before to, ascending.
	ListDatesUpTo(ctx context.Context, userID, to string) ([]string, error)
	Count(ctx context.Context, userID string) (int, error)
}

type AddendumRepo interface {
	Creator[domain.ReflectionAddendum]
	Get(ctx context.Context, userID, dateLocal string) (*domain.ReflectionAddendum, error)
}

type MoodRepo interface {
	Replacer[domain.MoodLog]
	Get(ctx context.Context, userID, dateLocal string) (*domain.MoodLog, error)
}

type SummaryRepo interface {
	Creator[domain.Summary]
	// List returns summaries newest period first. A nil period lists both.
	List(ctx context.Context, userID string, period *domain.PeriodType, limit int) ([]*domain.Summary, error)
}

// MomentQuery pages through a user's moments newest first. Cursor is the id
// of the last moment on the previous page.
type MomentQuery struct {
	UserID string
	Cursor string
	Search string
	Limit  int
}

type MomentRepo interface {
	Creator[domain.GratitudeMoment]
	List(ctx context.Context, q MomentQuery) ([]*domain.GratitudeMoment, error)
}
