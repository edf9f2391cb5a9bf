package domain

import "time"

// MoodLog is replaced wholesale on every write for its (user, date).
type MoodLog struct {
	ID        string
	UserID    string
	DateLocal string
	Rating    int
	Tags      []string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
