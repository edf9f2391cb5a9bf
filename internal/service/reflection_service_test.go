package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/bluum/internal/calendar"
	"github.com/alexanderramin/bluum/internal/coaching"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/messages"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/alexanderramin/bluum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_FirstReflection(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ev := coachingEvaluator(domain.CoachValidate, "That sounds like a lovely moment.")
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), ev)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "  The bread from the corner bakery was still warm.  "})
	require.NoError(t, err)

	assert.True(t, resp.Saved)
	assert.Equal(t, testDate, resp.DateLocal)
	assert.False(t, resp.SafetyFlagged)
	assert.Nil(t, resp.SafeResponse)
	require.NotNil(t, resp.Coach)
	assert.Equal(t, "VALIDATE", resp.Coach.Type)
	assert.Equal(t, "That sounds like a lovely moment.", resp.Coach.Text)
	assert.Equal(t, &contract.ScoresView{Specificity: 2, Meaning: 1, Emotion: 2}, resp.Coach.Scores)
	assert.Equal(t, 1, resp.CurrentStreak)
	assert.Equal(t, 1, resp.TotalReflections)

	milestone, ok := messages.Milestone(1)
	require.True(t, ok)
	assert.Equal(t, milestone, resp.SuccessMessage)

	stored, err := r.reflections.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, "The bread from the corner bakery was still warm.", stored.ResponseText)
	assert.Equal(t, "d02", stored.Prompt.PromptID)
	assert.Equal(t, domain.CoachValidate, stored.CoachType)

	st, err := r.statuses.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.True(t, st.HasReflection)
}

func TestSubmit_Twice(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	ev := coachingEvaluator(domain.CoachNudge, "What made it stand out?")
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), ev)
	ctx := context.Background()

	_, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "Coffee."})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "Coffee again."})
	assert.ErrorIs(t, err, domain.ErrReflectionExists)
	assert.Equal(t, int32(1), ev.calls.Load(), "rejected submissions should not reach the model")
}

func TestSubmit_Flagged(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), flaggingEvaluator())
	ctx := context.Background()

	resp, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "I don't see the point anymore."})
	require.NoError(t, err)

	assert.True(t, resp.Saved)
	assert.True(t, resp.SafetyFlagged)
	assert.Nil(t, resp.Coach)
	assert.Empty(t, resp.SuccessMessage)
	require.NotNil(t, resp.SafeResponse)
	assert.Len(t, resp.SafeResponse.Resources, 4)
	assert.Equal(t, 1, resp.TotalReflections)

	stored, err := r.reflections.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, domain.CoachNone, stored.CoachType)
	assert.Nil(t, stored.CoachText)
	assert.Nil(t, stored.Scores)
}

func TestSubmit_Validation(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	ev := coachingEvaluator(domain.CoachValidate, "ok")
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), ev)
	ctx := context.Background()

	tests := []struct {
		name string
		req  contract.ReflectRequest
	}{
		{"empty", contract.ReflectRequest{ResponseText: "   "}},
		{"too long", contract.ReflectRequest{ResponseText: strings.Repeat("a", MaxResponseRunes+1)}},
		{"bad date", contract.ReflectRequest{ResponseText: "fine", Date: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, u, tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Zero(t, ev.calls.Load())
}

func TestSubmit_StreakAndPoolMessage(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ctx := context.Background()
	for _, d := range []string{"2024-03-10", "2024-03-13", "2024-03-14"} {
		require.NoError(t, r.reflections.Create(ctx, testutil.NewTestReflection(u.ID, d)))
	}

	svc := newReflectionService(t, database, testutil.NewTestUoW(database), coachingEvaluator(domain.CoachValidate, "Nice."))
	resp, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "A long walk by the river."})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.CurrentStreak)
	assert.Equal(t, 4, resp.TotalReflections)
	assert.Contains(t, messages.SuccessPool(), resp.SuccessMessage)
}

func TestSubmit_BlocksLaterSwap(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), coachingEvaluator(domain.CoachValidate, "Nice."))
	ctx := context.Background()

	_, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "Sunlight on the desk."})
	require.NoError(t, err)

	_, err = newCycleService(t, database, testutil.NewTestUoW(database)).Swap(ctx, u, testDate)
	assert.ErrorIs(t, err, domain.ErrSwapAfterReflection)
}

func TestSubmit_RollbackOnMarkFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ctx := context.Background()

	// Exec #1 inserts the reflection, #2 flags the cycle.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("injected mark failure")}
	svc := newReflectionService(t, database, failUoW, coachingEvaluator(domain.CoachValidate, "Nice."))

	_, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "Tea with a friend."})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected mark failure")

	_, err = r.reflections.Get(ctx, u.ID, testDate)
	assert.ErrorIs(t, err, repository.ErrNotFound, "reflection should be rolled back")

	st, err := r.statuses.Get(ctx, u.ID, testDate)
	require.NoError(t, err, "the cycle itself was created before the failing transaction")
	assert.False(t, st.HasReflection)
}

func TestAddAddendum(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), coachingEvaluator(domain.CoachValidate, "Nice."))
	ctx := context.Background()

	_, err := svc.AddAddendum(ctx, u, contract.AddendumRequest{Text: "Also the weather."})
	assert.ErrorIs(t, err, domain.ErrNoReflectionForAddendum)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "A good lunch."})
	require.NoError(t, err)

	resp, err := svc.AddAddendum(ctx, u, contract.AddendumRequest{Text: " Also the weather. "})
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.Equal(t, "Also the weather.", resp.Text)

	_, err = svc.AddAddendum(ctx, u, contract.AddendumRequest{Text: "One more."})
	assert.ErrorIs(t, err, domain.ErrAddendumExists)
}

func TestAddAddendum_OnlyToday(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ctx := context.Background()
	require.NoError(t, r.reflections.Create(ctx, testutil.NewTestReflection(u.ID, "2024-03-14")))

	svc := newReflectionService(t, database, testutil.NewTestUoW(database), coachingEvaluator(domain.CoachValidate, "Nice."))
	_, err := svc.AddAddendum(ctx, u, contract.AddendumRequest{Date: "2024-03-14", Text: "Late thought."})
	assert.ErrorIs(t, err, domain.ErrAddendumNotToday)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.AddAddendum(ctx, u, contract.AddendumRequest{Text: strings.Repeat("x", MaxAddendumRunes+1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// swappingEvaluator runs before on each evaluation, standing in for a
// concurrent writer that commits while the model is still working.
type swappingEvaluator struct {
	*stubEvaluator
	before  func(call int)
	prompts []string
}

func (e *swappingEvaluator) Evaluate(ctx context.Context, in coaching.Input) coaching.Evaluation {
	e.prompts = append(e.prompts, in.PromptText)
	e.before(len(e.prompts))
	return e.stubEvaluator.Evaluate(ctx, in)
}

func TestSubmit_SwapDuringEvaluation(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ctx := context.Background()
	cycles := newCycleService(t, database, testutil.NewTestUoW(database))

	ev := &swappingEvaluator{stubEvaluator: coachingEvaluator(domain.CoachValidate, "Nice.")}
	ev.before = func(call int) {
		if call == 1 {
			_, err := cycles.Swap(ctx, u, testDate)
			require.NoError(t, err)
		}
	}
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), ev)

	resp, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "A quiet train ride."})
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.Equal(t, 1, resp.TotalReflections)

	require.Len(t, ev.prompts, 2, "the reflection is evaluated again against the new prompt")
	assert.NotEqual(t, ev.prompts[0], ev.prompts[1])

	st, err := r.statuses.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, "d48", st.Prompt.PromptID)
	assert.True(t, st.DidSwapPrompt)
	assert.True(t, st.HasReflection)

	stored, err := r.reflections.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, st.Prompt, stored.Prompt)
	assert.Equal(t, ev.prompts[1], stored.Prompt.PromptText)
}

func TestSubmit_PromptKeepsMoving(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	ctx := context.Background()

	ev := &swappingEvaluator{stubEvaluator: coachingEvaluator(domain.CoachValidate, "Nice.")}
	ev.before = func(call int) {
		_, err := database.ExecContext(ctx,
			`UPDATE daily_status SET prompt_id = ? WHERE user_id = ? AND date_local = ?`,
			fmt.Sprintf("moved-%d", call), u.ID, testDate)
		require.NoError(t, err)
	}
	svc := newReflectionService(t, database, testutil.NewTestUoW(database), ev)

	_, err := svc.Submit(ctx, u, contract.ReflectRequest{ResponseText: "A quiet train ride."})
	assert.ErrorIs(t, err, domain.ErrPromptChanged)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, ev.prompts, 2)

	_, err = r.reflections.Get(ctx, u.ID, testDate)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	st, err := r.statuses.Get(ctx, u.ID, testDate)
	require.NoError(t, err)
	assert.False(t, st.HasReflection)
}

func TestSubmit_StreakLongerThanLookback(t *testing.T) {
	database := testutil.NewTestDB(t)
	u := seedUser1(t, database)
	r := setupRepos(database)
	yesterday, err := calendar.AddDays(testDate, -1)
	require.NoError(t, err)
	seedRun(t, r, u.ID, yesterday, 400)

	svc := newReflectionService(t, database, testutil.NewTestUoW(database), coachingEvaluator(domain.CoachValidate, "Nice."))
	resp, err := svc.Submit(context.Background(), u, contract.ReflectRequest{ResponseText: "Day four hundred and one."})
	require.NoError(t, err)
	assert.Equal(t, 401, resp.CurrentStreak)
	assert.Equal(t, 401, resp.TotalReflections)
}
