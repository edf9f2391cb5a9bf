package domain

import "time"

type Summary struct {
	ID               string
	UserID           string
	PeriodType       PeriodType
	PeriodStartLocal string
	PeriodEndLocal   string
	SummaryText      string
	CreatedAt        time.Time
}
