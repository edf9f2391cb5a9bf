package prompt

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Loads(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, 60, c.Len())

	first, ok := c.Get("d01")
	require.True(t, ok)
	assert.Equal(t, "low-demand", first.PrimaryTag())
	assert.NotEmpty(t, first.Text)

	_, ok = c.Get("d99")
	assert.False(t, ok)
}

func TestDefaultCatalog_SortedByID(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	ids := make([]string, 0, c.Len())
	for _, p := range c.All() {
		ids = append(ids, p.ID)
		assert.NotEmpty(t, p.Tags, "prompt %s should have tags", p.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewCatalog_SortsInput(t *testing.T) {
	c, err := NewCatalog([]Prompt{
		{ID: "b", Text: "B", Tags: []string{"x"}},
		{ID: "a", Text: "A"},
	})
	require.NoError(t, err)

	want := []Prompt{
		{ID: "a", Text: "A"},
		{ID: "b", Text: "B", Tags: []string{"x"}},
	}
	if diff := cmp.Diff(want, c.All()); diff != "" {
		t.Errorf("catalog order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{GeneralTag, "x"}, c.PrimaryTags())
}

func TestNewCatalog_Rejects(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.Error(t, err)

	_, err = NewCatalog([]Prompt{{ID: "a", Text: "A"}, {ID: "a", Text: "again"}})
	assert.ErrorContains(t, err, "duplicate prompt id a")

	_, err = NewCatalog([]Prompt{{ID: "a"}})
	assert.ErrorContains(t, err, "has no text")

	_, err = NewCatalog([]Prompt{{Text: "orphan"}})
	assert.ErrorContains(t, err, "has no id")
}

func TestLoadCatalog_BadYAML(t *testing.T) {
	_, err := LoadCatalog([]byte("prompts: [unterminated"))
	assert.Error(t, err)
}

func TestAll_ReturnsCopy(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	all := c.All()
	all[0].ID = "mutated"

	p, ok := c.Get("d01")
	require.True(t, ok)
	assert.Equal(t, "d01", p.ID)
	assert.Equal(t, "d01", c.All()[0].ID)
}
