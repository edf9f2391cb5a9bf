package contract

import (
	"time"

	"github.com/alexanderramin/bluum/internal/domain"
)

// OnboardRequest completes onboarding. A nil ReminderEnabled keeps the
// current setting.
type OnboardRequest struct {
	DisplayName     string
	Timezone        string
	ReminderEnabled *bool
	ReminderTime    string
}

type MeResponse struct {
	ID                    string     `json:"id"`
	ExternalID            string     `json:"externalId"`
	DisplayName           string     `json:"displayName"`
	Timezone              string     `json:"timezone"`
	ReminderEnabled       bool       `json:"reflectionReminderEnabled"`
	ReminderTime          string     `json:"reflectionReminderTimeLocal,omitempty"`
	OnboardingCompleted   bool       `json:"onboardingCompleted"`
	OnboardingCompletedAt *time.Time `json:"onboardingCompletedAt,omitempty"`
}

func NewMeResponse(u *domain.User) MeResponse {
	return MeResponse{
		ID:                    u.ID,
		ExternalID:            u.ExternalID,
		DisplayName:           u.DisplayName,
		Timezone:              u.Timezone,
		ReminderEnabled:       u.ReflectionReminderEnabled,
		ReminderTime:          u.ReflectionReminderTimeLocal,
		OnboardingCompleted:   u.OnboardingCompleted(),
		OnboardingCompletedAt: u.OnboardingCompletedAt,
	}
}
