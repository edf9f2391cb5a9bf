// Package streak computes consecutive-day reflection streaks from the set
// of completed local dates.
package streak

import (
	"sort"
	"time"

	"github.com/alexanderramin/bluum/internal/calendar"
)

// DefaultLookbackDays bounds how far back Current searches for the most
// recent completed day when the as-of day itself is not completed.
const DefaultLookbackDays = 365

// Set holds completed YYYY-MM-DD dates.
type Set map[string]struct{}

func NewSet(dates []string) Set {
	s := make(Set, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s Set) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Summary is the streak view for one user as of a date.
type Summary struct {
	Current int
	Longest int
	Total   int
}

// Current counts the run of consecutive completed days ending at asOf or,
// when asOf is not completed, at the nearest completed day within
// lookbackDays before it.
func Current(completed Set, asOf string, lookbackDays int) int {
	if len(completed) == 0 {
		return 0
	}
	day, err := calendar.Parse(asOf)
	if err != nil {
		return 0
	}

	if !completed.Has(format(day)) {
		found := false
		for i := 0; i < lookbackDays; i++ {
			day = day.AddDate(0, 0, -1)
			if completed.Has(format(day)) {
				found = true
				break
			}
		}
		if !found {
			return 0
		}
	}

	n := 0
	for completed.Has(format(day)) {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

// Longest returns the longest run of consecutive days in dates. Order and
// duplicates in the input do not matter; unparseable entries are skipped.
func Longest(dates []string) int {
	uniq := make([]string, 0, len(dates))
	for d := range NewSet(dates) {
		if calendar.Valid(d) {
			uniq = append(uniq, d)
		}
	}
	if len(uniq) == 0 {
		return 0
	}
	sort.Strings(uniq)

	longest, run := 1, 1
	for i := 1; i < len(uniq); i++ {
		next, _ := calendar.AddDays(uniq[i-1], 1)
		if next == uniq[i] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// Summarize computes all streak figures from the completed dates.
func Summarize(dates []string, asOf string, lookbackDays int) Summary {
	set := NewSet(dates)
	return Summary{
		Current: Current(set, asOf, lookbackDays),
		Longest: Longest(dates),
		Total:   len(set),
	}
}

func format(t time.Time) string {
	return t.Format(calendar.Layout)
}
