package domain

import "time"

// User is the minimal profile the daily cycle needs. Rows are created on
// first sight of an external identity and filled in by onboarding.
type User struct {
	ID                          string
	ExternalID                  string
	DisplayName                 string
	Timezone                    string
	ReflectionReminderEnabled   bool
	ReflectionReminderTimeLocal string
	OnboardingCompletedAt       *time.Time
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

func (u *User) OnboardingCompleted() bool {
	return u.OnboardingCompletedAt != nil
}
