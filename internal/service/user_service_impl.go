package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/bluum/internal/calendar"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/google/uuid"
)

const MaxDisplayNameRunes = 50

var reminderTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type userService struct {
	users    repository.UserRepo
	clock    Clock
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, clock Clock, observers ...UseCaseObserver) UserService {
	return &userService{
		users:    users,
		clock:    clockOrDefault(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *userService) Resolve(ctx context.Context, externalID string) (u *domain.User, err error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, domain.Validationf("A user id is required")
	}

	u, err = s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	fields := map[string]any{"external_id": externalID}
	done := observe(ctx, s.observer, "create-user", s.clock, fields)
	defer func() { done(err) }()

	now := s.clock()
	created, err := s.users.CreateIfAbsent(ctx, &domain.User{
		ID:         uuid.New().String(),
		ExternalID: externalID,
		Timezone:   "UTC",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = created

	u, err = s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("re-reading user after create: %w", err)
	}
	return u, nil
}

// Onboard applies the profile form. Fields left empty keep their current
// value, and the completion timestamp is only ever set once.
func (s *userService) Onboard(ctx context.Context, user *domain.User, req contract.OnboardRequest) (u *domain.User, err error) {
	fields := map[string]any{"user_id": user.ID}
	done := observe(ctx, s.observer, "onboard-user", s.clock, fields)
	defer func() { done(err) }()

	name, err := cleanText("Display name", req.DisplayName, 1, MaxDisplayNameRunes)
	if err != nil {
		return nil, err
	}
	zone := strings.TrimSpace(req.Timezone)
	if zone == "" {
		zone = domain.CoalesceStr(user.Timezone, "UTC")
	}
	if !calendar.ValidZone(zone) {
		return nil, domain.Validationf("Invalid timezone %q. Use an IANA name like Europe/London", zone)
	}

	enabled := domain.BoolFromPtrWithDefault(user.ReflectionReminderEnabled, req.ReminderEnabled)
	reminderTime := domain.CoalesceStr(strings.TrimSpace(req.ReminderTime), user.ReflectionReminderTimeLocal)
	if reminderTime != "" && !reminderTimePattern.MatchString(reminderTime) {
		return nil, domain.Validationf("Invalid reminder time %q. Use HH:MM", reminderTime)
	}
	if req.ReminderEnabled != nil && *req.ReminderEnabled && reminderTime == "" {
		return nil, domain.Validationf("A reminder time is required when reminders are enabled")
	}

	now := s.clock()
	next := *user
	next.DisplayName = name
	next.Timezone = zone
	next.ReflectionReminderEnabled = enabled
	next.ReflectionReminderTimeLocal = reminderTime
	next.UpdatedAt = now
	if next.OnboardingCompletedAt == nil {
		next.OnboardingCompletedAt = &now
		fields["first_completion"] = true
	}
	if err := s.users.UpdateProfile(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}
