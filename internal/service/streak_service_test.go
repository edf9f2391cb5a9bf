package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/bluum/internal/calendar"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ctx := context.Background()
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-13", "2024-03-14"} {
		require.NoError(t, r.reflections.Create(ctx, testutil.NewTestReflection(u.ID, d)))
	}
	svc := NewStreakService(r.reflections, 0, fixedClock)

	// Today has no reflection yet, so the run ending yesterday still counts.
	got, err := svc.Get(ctx, u, "")
	require.NoError(t, err)
	assert.Equal(t, testDate, got.AsOf)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 4, got.LongestStreak)
	assert.Equal(t, 6, got.TotalReflections)

	got, err = svc.Get(ctx, u, "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentStreak)
}

func TestStreakGet_Empty(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	svc := NewStreakService(setupRepos(database).reflections, 365, fixedClock)

	got, err := svc.Get(context.Background(), u, "")
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStreak)
	assert.Zero(t, got.LongestStreak)
	assert.Zero(t, got.TotalReflections)

	_, err = svc.Get(context.Background(), u, "03/15/2024")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// seedRun inserts n consecutive reflections ending on last.
func seedRun(t *testing.T, r repos, userID, last string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		d, err := calendar.AddDays(last, -i)
		require.NoError(t, err)
		require.NoError(t, r.reflections.Create(context.Background(), testutil.NewTestReflection(userID, d)))
	}
}

func TestStreakGet_RunLongerThanLookback(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	seedRun(t, r, u.ID, testDate, 500)
	svc := NewStreakService(r.reflections, 0, fixedClock)

	got, err := svc.Get(context.Background(), u, "")
	require.NoError(t, err)
	assert.Equal(t, 500, got.CurrentStreak)
	assert.Equal(t, 500, got.LongestStreak)
	assert.Equal(t, 500, got.TotalReflections)
}

func TestStreakGet_LongestOutsideLookback(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	seedRun(t, r, u.ID, "2022-01-30", 30)
	require.NoError(t, r.reflections.Create(context.Background(), testutil.NewTestReflection(u.ID, testDate)))
	svc := NewStreakService(r.reflections, 0, fixedClock)

	got, err := svc.Get(context.Background(), u, "")
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 30, got.LongestStreak)
	assert.Equal(t, 31, got.TotalReflections)

	// Dates after asOf are not part of the history seen from asOf.
	got, err = svc.Get(context.Background(), u, "2022-01-15")
	require.NoError(t, err)
	assert.Equal(t, 15, got.CurrentStreak)
	assert.Equal(t, 15, got.LongestStreak)
}

func TestStreakGet_NearestDayStillBoundedByLookback(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	seedRun(t, r, u.ID, "2024-03-01", 10)

	got, err := NewStreakService(r.reflections, 7, fixedClock).Get(context.Background(), u, "")
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStreak, "last reflection is 14 days back")
	assert.Equal(t, 10, got.LongestStreak)

	got, err = NewStreakService(r.reflections, 14, fixedClock).Get(context.Background(), u, "")
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentStreak)
}
