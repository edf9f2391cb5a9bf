package domain

type CoachType string

const (
	CoachValidate CoachType = "VALIDATE"
	CoachNudge    CoachType = "NUDGE"
	CoachNone     CoachType = "NONE"
)

// Valid reports whether c is a stored coach classification.
func (c CoachType) Valid() bool {
	switch c {
	case CoachValidate, CoachNudge, CoachNone:
		return true
	}
	return false
}

type PeriodType string

const (
	PeriodWeekly  PeriodType = "WEEKLY"
	PeriodMonthly PeriodType = "MONTHLY"
)

type SafetyReason string

const (
	ReasonSelfHarm SafetyReason = "self_harm"
	ReasonOther    SafetyReason = "other"
	ReasonNone     SafetyReason = "none"
)

type ReminderPool string

const (
	PoolEvening  ReminderPool = "evening"
	PoolFollowup ReminderPool = "followup"
)
