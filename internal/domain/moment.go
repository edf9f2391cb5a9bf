package domain

import "time"

// GratitudeMoment is a short note or photo captured outside the daily prompt.
// At least one of Text and ImageURL is set.
type GratitudeMoment struct {
	ID        string
	UserID    string
	Text      string
	ImageURL  string
	CreatedAt time.Time
}
