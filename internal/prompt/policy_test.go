package prompt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy(t *testing.T) *Policy {
	t.Helper()
	c, err := DefaultCatalog()
	require.NoError(t, err)
	return NewPolicy(c, DefaultThresholds())
}

func TestSelect_KnownPicks(t *testing.T) {
	p := defaultPolicy(t)

	assert.Equal(t, "d02", p.Select(SelectionContext{UserID: "user-1", DateLocal: "2024-03-15"}).ID)
	assert.Equal(t, "d23", p.Select(SelectionContext{UserID: "user-2", DateLocal: "2024-03-15"}).ID)
}

func TestSelect_SameUserDifferentDates(t *testing.T) {
	p := defaultPolicy(t)

	assert.Equal(t, "d01", p.Select(SelectionContext{UserID: "user-1", DateLocal: "2024-03-16"}).ID)
	assert.Equal(t, "d60", p.Select(SelectionContext{UserID: "user-1", DateLocal: "2024-03-17"}).ID)

	prev := p.Select(SelectionContext{UserID: "user-1", DateLocal: "2024-03-01"}).ID
	for day := 2; day <= 31; day++ {
		got := p.Select(SelectionContext{UserID: "user-1", DateLocal: fmt.Sprintf("2024-03-%02d", day)}).ID
		assert.NotEqual(t, prev, got, "2024-03-%02d repeats the previous day", day)
		prev = got
	}
}

func TestSelect_Deterministic(t *testing.T) {
	p := defaultPolicy(t)
	ctx := SelectionContext{
		UserID:            "user-1",
		DateLocal:         "2024-03-15",
		RecentHistoryTags: []string{"sensory", "sensory"},
		RecentPromptIDs:   []string{"d01", "d02"},
	}

	first := p.Select(ctx)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, p.Select(ctx))
	}
}

func TestSelect_AvoidsRecentPromptIDs(t *testing.T) {
	p := defaultPolicy(t)
	recent := []string{"d02", "d10", "d11"}

	got := p.Select(SelectionContext{UserID: "user-1", DateLocal: "2024-03-15", RecentPromptIDs: recent})

	assert.Equal(t, "d26", got.ID)
	assert.NotContains(t, recent, got.ID)
}

func TestSelect_OnlyFirstWindowIDsAvoided(t *testing.T) {
	p := defaultPolicy(t)

	for day := 1; day <= 28; day++ {
		ctx := SelectionContext{
			UserID:          "u",
			DateLocal:       fmt.Sprintf("2024-02-%02d", day),
			RecentPromptIDs: []string{"d01", "d02", "d03", "d04", "d05"},
		}
		got := p.Select(ctx)
		assert.NotContains(t, []string{"d01", "d02", "d03"}, got.ID)
	}
}

func TestSelect_AvoidsRepeatedPrimaryTag(t *testing.T) {
	p := defaultPolicy(t)

	got := p.Select(SelectionContext{
		UserID:            "user-1",
		DateLocal:         "2024-03-15",
		RecentHistoryTags: []string{"low-demand", "low-demand"},
	})

	assert.Equal(t, "d41", got.ID)
	assert.NotEqual(t, "low-demand", got.PrimaryTag())
}

func TestSelect_TagRuleNeedsTwoEqualTags(t *testing.T) {
	p := defaultPolicy(t)
	base := p.Select(SelectionContext{UserID: "user-1", DateLocal: "2024-03-15"})

	mixed := p.Select(SelectionContext{
		UserID:            "user-1",
		DateLocal:         "2024-03-15",
		RecentHistoryTags: []string{"low-demand", "medium-demand"},
	})
	single := p.Select(SelectionContext{
		UserID:            "user-1",
		DateLocal:         "2024-03-15",
		RecentHistoryTags: []string{"low-demand"},
	})

	assert.Equal(t, base, mixed)
	assert.Equal(t, base, single)
}

func TestSelect_SmallCatalogIgnoresRulesBelowThreshold(t *testing.T) {
	c, err := NewCatalog([]Prompt{
		{ID: "a", Text: "A", Tags: []string{"x"}},
		{ID: "b", Text: "B", Tags: []string{"x"}},
		{ID: "c", Text: "C", Tags: []string{"y"}},
		{ID: "d", Text: "D", Tags: []string{"y"}},
	})
	require.NoError(t, err)
	p := NewPolicy(c, DefaultThresholds())

	// Excluding a, b, c would leave one candidate, fewer than five, so all four stay eligible.
	// Excluding tag x would leave two, fewer than three, so it is ignored too.
	seen := map[string]bool{}
	for day := 1; day <= 28; day++ {
		got := p.Select(SelectionContext{
			UserID:            "u",
			DateLocal:         fmt.Sprintf("2024-02-%02d", day),
			RecentPromptIDs:   []string{"a", "b", "c"},
			RecentHistoryTags: []string{"x", "x"},
		})
		seen[got.ID] = true
	}
	assert.True(t, seen["a"] || seen["b"] || seen["c"], "excluded ids should remain selectable")
}

func TestSelect_ConfigurableThresholds(t *testing.T) {
	c, err := NewCatalog([]Prompt{
		{ID: "a", Text: "A", Tags: []string{"x"}},
		{ID: "b", Text: "B", Tags: []string{"x"}},
		{ID: "c", Text: "C", Tags: []string{"y"}},
	})
	require.NoError(t, err)
	p := NewPolicy(c, Thresholds{RecentIDWindow: 1, MinAfterIDExclusion: 1, MinAfterTagExclusion: 1})

	for day := 1; day <= 20; day++ {
		got := p.Select(SelectionContext{
			UserID:            "u",
			DateLocal:         fmt.Sprintf("2024-02-%02d", day),
			RecentHistoryTags: []string{"x", "x"},
		})
		assert.Equal(t, "c", got.ID)
	}
}

func TestPickAlternate_KnownPick(t *testing.T) {
	p := defaultPolicy(t)

	got, ok := p.PickAlternate("d02", SelectionContext{UserID: "user-1", DateLocal: "2024-03-15"})

	require.True(t, ok)
	assert.Equal(t, "d48", got.ID)
	assert.NotEqual(t, "low-demand", got.PrimaryTag())
}

func TestPickAlternate_NeverReturnsCurrent(t *testing.T) {
	p := defaultPolicy(t)

	for _, current := range p.Catalog().All() {
		ctx := SelectionContext{UserID: "user-9", DateLocal: "2024-05-05"}
		got, ok := p.PickAlternate(current.ID, ctx)
		require.True(t, ok)
		assert.NotEqual(t, current.ID, got.ID)
	}
}

func TestPickAlternate_UnknownCurrentStillExcluded(t *testing.T) {
	p := defaultPolicy(t)

	got, ok := p.PickAlternate("retired-prompt", SelectionContext{UserID: "u", DateLocal: "2024-01-01"})
	require.True(t, ok)
	_, known := p.Catalog().Get(got.ID)
	assert.True(t, known)
}

func TestPickAlternate_SinglePromptCatalog(t *testing.T) {
	c, err := NewCatalog([]Prompt{{ID: "only", Text: "Only"}})
	require.NoError(t, err)
	p := NewPolicy(c, DefaultThresholds())

	_, ok := p.PickAlternate("only", SelectionContext{UserID: "u", DateLocal: "2024-01-01"})
	assert.False(t, ok)
}
