package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference instant used across tests: 2024-03-15 12:00 UTC.
var FixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// User options
type UserOption func(*domain.User)

func WithTimezone(tz string) UserOption {
	return func(u *domain.User) {
		u.Timezone = tz
	}
}

func WithDisplayName(name string) UserOption {
	return func(u *domain.User) {
		u.DisplayName = name
	}
}

func WithOnboardedAt(t time.Time) UserOption {
	return func(u *domain.User) {
		u.OnboardingCompletedAt = &t
	}
}

func NewTestUser(externalID string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:                        uuid.New().String(),
		ExternalID:                externalID,
		ReflectionReminderEnabled: true,
		CreatedAt:                 FixedNow,
		UpdatedAt:                 FixedNow,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SeedUser inserts u directly, bypassing repositories.
func SeedUser(t *testing.T, conn db.DBTX, u *domain.User) *domain.User {
	t.Helper()
	_, err := conn.ExecContext(context.Background(),
		`INSERT INTO users (id, external_id, display_name, timezone, reflection_reminder_enabled,
			reflection_reminder_time_local, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.ExternalID, u.DisplayName, u.Timezone, 1, u.ReflectionReminderTimeLocal,
		u.CreatedAt.UTC().Format(time.RFC3339Nano), u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

// Cycle options
type StatusOption func(*domain.DailyStatus)

func WithSwapped() StatusOption {
	return func(s *domain.DailyStatus) {
		s.DidSwapPrompt = true
	}
}

func WithReflected() StatusOption {
	return func(s *domain.DailyStatus) {
		s.HasReflection = true
	}
}

func WithPrompt(id, text string) StatusOption {
	return func(s *domain.DailyStatus) {
		s.Prompt = domain.PromptSnapshot{PromptID: id, PromptText: text}
	}
}

func NewTestDailyStatus(userID, dateLocal string, opts ...StatusOption) *domain.DailyStatus {
	s := &domain.DailyStatus{
		ID:        uuid.New().String(),
		UserID:    userID,
		DateLocal: dateLocal,
		Prompt:    domain.PromptSnapshot{PromptID: "d01", PromptText: "Okay, easy one. What's something you ate recently that was actually good?"},
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestHistory(userID, dateLocal, promptID string, tags ...string) *domain.PromptHistoryEntry {
	return &domain.PromptHistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		DateLocal: dateLocal,
		PromptID:  promptID,
		TagsUsed:  tags,
		CreatedAt: FixedNow,
	}
}

func NewTestReflection(userID, dateLocal string) *domain.Reflection {
	text := "Nice noticing."
	return &domain.Reflection{
		ID:           uuid.New().String(),
		UserID:       userID,
		DateLocal:    dateLocal,
		Prompt:       domain.PromptSnapshot{PromptID: "d01", PromptText: "Okay, easy one. What's something you ate recently that was actually good?"},
		ResponseText: "My neighbour waved at me.",
		CoachType:    domain.CoachValidate,
		CoachText:    &text,
		Scores:       &domain.RubricScores{Specificity: 1, Meaning: 1, Emotion: 1},
		CreatedAt:    FixedNow,
	}
}
