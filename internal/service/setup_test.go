package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/bluum/internal/coaching"
	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/prompt"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/alexanderramin/bluum/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testDate = "2024-03-15"

func fixedClock() time.Time { return testutil.FixedNow }

type stubEvaluator struct {
	ev    coaching.Evaluation
	calls atomic.Int32
}

func (s *stubEvaluator) Evaluate(context.Context, coaching.Input) coaching.Evaluation {
	s.calls.Add(1)
	return s.ev
}

func coachingEvaluator(coachType domain.CoachType, text string) *stubEvaluator {
	return &stubEvaluator{ev: coaching.Evaluation{
		Safety: coaching.SafetyFallback(),
		Coach: &coaching.CoachResult{
			Scores:    domain.RubricScores{Specificity: 2, Meaning: 1, Emotion: 2},
			CoachType: coachType,
			CoachText: text,
		},
	}}
}

func flaggingEvaluator() *stubEvaluator {
	return &stubEvaluator{ev: coaching.Evaluation{
		Safety: coaching.SafetyResult{Flagged: true, Reason: domain.ReasonSelfHarm},
	}}
}

type repos struct {
	users       *repository.SQLUserRepo
	statuses    *repository.SQLDailyStatusRepo
	histories   *repository.SQLPromptHistoryRepo
	reflections *repository.SQLReflectionRepo
	addenda     *repository.SQLAddendumRepo
	moods       *repository.SQLMoodRepo
	summaries   *repository.SQLSummaryRepo
	moments     *repository.SQLMomentRepo
}

func setupRepos(conn db.DBTX) repos {
	return repos{
		users:       repository.NewSQLUserRepo(conn),
		statuses:    repository.NewSQLDailyStatusRepo(conn),
		histories:   repository.NewSQLPromptHistoryRepo(conn),
		reflections: repository.NewSQLReflectionRepo(conn),
		addenda:     repository.NewSQLAddendumRepo(conn),
		moods:       repository.NewSQLMoodRepo(conn),
		summaries:   repository.NewSQLSummaryRepo(conn),
		moments:     repository.NewSQLMomentRepo(conn),
	}
}

func testPolicy(t *testing.T) *prompt.Policy {
	t.Helper()
	c, err := prompt.DefaultCatalog()
	require.NoError(t, err)
	return prompt.NewPolicy(c, prompt.DefaultThresholds())
}

// seedUser1 inserts the user whose selections are pinned in the prompt
// tests: user-1 on 2024-03-15 gets d02, and swaps to d48.
func seedUser1(t *testing.T, database *db.DB) *domain.User {
	t.Helper()
	u := testutil.NewTestUser("ext-1", testutil.WithTimezone("UTC"))
	u.ID = "user-1"
	return testutil.SeedUser(t, database, u)
}

func newCycleService(t *testing.T, database *db.DB, uow db.UnitOfWork) CycleService {
	t.Helper()
	r := setupRepos(database)
	return NewCycleService(r.statuses, r.histories, testPolicy(t), uow, fixedClock)
}

func newReflectionService(t *testing.T, database *db.DB, uow db.UnitOfWork, ev ReflectionEvaluator) ReflectionService {
	t.Helper()
	r := setupRepos(database)
	cycles := newCycleService(t, database, testutil.NewTestUoW(database))
	return NewReflectionService(cycles, r.reflections, r.addenda, ev, uow, fixedClock, 0)
}
