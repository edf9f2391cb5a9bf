package domain

import "time"

// RubricScores grade a reflection on three axes, each 0..2.
type RubricScores struct {
	Specificity int `json:"specificity"`
	Meaning     int `json:"meaning"`
	Emotion     int `json:"emotion"`
}

// Reflection is write-once. There is no update path.
type Reflection struct {
	ID           string
	UserID       string
	DateLocal    string
	Prompt       PromptSnapshot
	ResponseText string
	CoachType    CoachType
	CoachText    *string
	Scores       *RubricScores
	CreatedAt    time.Time
}

// ReflectionAddendum is a single same-day follow-up note on a reflection.
type ReflectionAddendum struct {
	ID        string
	UserID    string
	DateLocal string
	Text      string
	CreatedAt time.Time
}
