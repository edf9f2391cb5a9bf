// Package calendar converts instants into the user's local calendar date.
//
// Every function takes the reference instant explicitly; nothing here reads
// the process clock or the host time zone.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata"
)

// Layout is the wire format for local dates.
const Layout = "2006-01-02"

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	zonePattern = regexp.MustCompile(`^[A-Za-z]+/[A-Za-z_]+(?:/[A-Za-z_]+)?$`)
)

// ErrInvalidDate is returned for strings that are not real YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("invalid local date")

// Location loads the named IANA zone. Empty, unknown and host-relative
// names resolve to UTC.
func Location(zone string) *time.Location {
	if zone == "" || zone == "Local" {
		return time.UTC
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateLocal returns the calendar date of instant in zone.
func DateLocal(instant time.Time, zone string) string {
	return instant.In(Location(zone)).Format(Layout)
}

// Valid reports whether s is a YYYY-MM-DD string naming a real date.
func Valid(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return false
	}
	return t.Format(Layout) == s
}

// Ensure returns input when it is a valid date, otherwise today in zone.
func Ensure(input, zone string, now time.Time) string {
	if Valid(input) {
		return input
	}
	return DateLocal(now, zone)
}

// Resolve is the strict form of Ensure used at request boundaries: an empty
// input means today, anything else must be valid.
func Resolve(input, zone string, now time.Time) (string, error) {
	if input == "" {
		return DateLocal(now, zone), nil
	}
	if !Valid(input) {
		return "", fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, input)
	}
	return input, nil
}

// Parse returns midnight UTC of the given date.
func Parse(date string) (time.Time, error) {
	if !Valid(date) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return time.Parse(Layout, date)
}

// AddDays shifts date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// ValidZone reports whether name is an Area/Location IANA zone (or UTC)
// that this host can load.
func ValidZone(name string) bool {
	if name != "UTC" && !zonePattern.MatchString(name) {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
