package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/bluum/internal/calendar"
	"github.com/alexanderramin/bluum/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Clock returns the current instant. Services never read time.Now directly.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return c
}

// resolveDate maps a request date onto the user's calendar: empty means
// today, anything else must be a real YYYY-MM-DD date.
func resolveDate(input, zone string, now time.Time) (string, error) {
	date, err := calendar.Resolve(strings.TrimSpace(input), zone, now)
	if err != nil {
		return "", domain.Validationf("Invalid date format: %q. Use YYYY-MM-DD", input)
	}
	return date, nil
}

// cleanText trims and NFC-normalizes user text, then checks its length in
// runes.
func cleanText(field, s string, minRunes, maxRunes int) (string, error) {
	s = norm.NFC.String(strings.TrimSpace(s))
	n := utf8.RuneCountInString(s)
	if n < minRunes {
		if minRunes == 1 {
			return "", domain.Validationf("%s is required", field)
		}
		return "", domain.Validationf("%s must be at least %d characters", field, minRunes)
	}
	if n > maxRunes {
		return "", domain.Validationf("%s must be %d characters or fewer", field, maxRunes)
	}
	return s, nil
}

func isClientError(err error) bool {
	return domain.IsClientError(err)
}
