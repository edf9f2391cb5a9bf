package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodLog_ReplacesSameDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	svc := NewMoodService(newCycleService(t, database, testutil.NewTestUoW(database)), testutil.NewTestUoW(database), fixedClock)
	ctx := context.Background()

	resp, err := svc.Log(ctx, u, contract.MoodRequest{Rating: 2, Tags: []string{" tired ", ""}, Note: "long day"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tired"}, resp.Tags)

	resp, err = svc.Log(ctx, u, contract.MoodRequest{Rating: 4, Tags: []string{"calm"}})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)

	stored, err := r.moods.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, []string{"calm"}, stored.Tags)
	assert.Empty(t, stored.Note)

	var rows int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM mood_logs WHERE user_id = ?`, u.ID).Scan(&rows))
	assert.Equal(t, 1, rows)

	st, err := r.statuses.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.True(t, st.HasMood)
	assert.False(t, st.HasReflection)
}

func TestMoodLog_Validation(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	svc := NewMoodService(newCycleService(t, database, testutil.NewTestUoW(database)), testutil.NewTestUoW(database), fixedClock)

	tests := []struct {
		name string
		req  contract.MoodRequest
	}{
		{"rating too low", contract.MoodRequest{Rating: 0}},
		{"rating too high", contract.MoodRequest{Rating: 6}},
		{"too many tags", contract.MoodRequest{Rating: 3, Tags: []string{"a", "b", "c", "d", "e", "f"}}},
		{"note too long", contract.MoodRequest{Rating: 3, Note: strings.Repeat("n", MaxMoodNoteRunes+1)}},
		{"bad date", contract.MoodRequest{Rating: 3, Date: "2024-13-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Log(context.Background(), u, tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
