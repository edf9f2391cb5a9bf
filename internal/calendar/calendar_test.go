package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateLocal_ZoneCrossesMidnight(t *testing.T) {
	instant := time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-10", DateLocal(instant, "UTC"))
	assert.Equal(t, "2024-03-09", DateLocal(instant, "America/New_York"))
	assert.Equal(t, "2024-03-10", DateLocal(instant, "Asia/Tokyo"))
}

func TestDateLocal_UnknownZoneFallsBackToUTC(t *testing.T) {
	instant := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	for _, zone := range []string{"", "Mars/Olympus", "not a zone", "Local"} {
		assert.Equal(t, "2024-06-01", DateLocal(instant, zone), "zone %q", zone)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2024-01-15", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-02-30", false},
		{"2024-13-01", false},
		{"2024-1-15", false},
		{"24-01-15", false},
		{"2024/01/15", false},
		{"2024-01-15T00:00:00Z", false},
		{"", false},
		{"1900-02-29", false},
		{"2000-02-29", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Valid(tc.in), "input %q", tc.in)
	}
}

func TestEnsure(t *testing.T) {
	now := time.Date(2024, 7, 4, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01", Ensure("2024-01-01", "UTC", now))
	assert.Equal(t, "2024-07-03", Ensure("garbage", "America/Los_Angeles", now))
	assert.Equal(t, "2024-07-04", Ensure("", "", now))
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC)

	got, err := Resolve("", "Europe/London", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04", got)

	got, err = Resolve("2024-07-01", "Europe/London", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", got)

	_, err = Resolve("2024-02-31", "UTC", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	got, err = AddDays("2024-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", got)

	_, err = AddDays("nope", 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidZone(t *testing.T) {
	assert.True(t, ValidZone("America/New_York"))
	assert.True(t, ValidZone("America/Argentina/Buenos_Aires"))
	assert.True(t, ValidZone("UTC"))
	assert.False(t, ValidZone("Local"))
	assert.False(t, ValidZone("EST5EDT"))
	assert.False(t, ValidZone("Mars/Olympus"))
	assert.False(t, ValidZone(""))
}
