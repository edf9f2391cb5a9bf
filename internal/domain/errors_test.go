package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindMatching(t *testing.T) {
	wrapped := fmt.Errorf("submitting: %w", ErrReflectionExists)

	assert.ErrorIs(t, wrapped, ErrReflectionExists)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "submitting: Reflection already exists for this date. Reflections cannot be edited.", wrapped.Error())
}

func TestError_Constructors(t *testing.T) {
	v := Validationf("rating must be between %d and %d", 1, 5)
	assert.ErrorIs(t, v, ErrValidation)
	assert.Equal(t, "rating must be between 1 and 5", v.Error())

	assert.ErrorIs(t, Conflictf("x"), ErrConflict)
	assert.ErrorIs(t, NotFoundf("x"), ErrNotFound)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrAddendumNotToday))
	assert.True(t, IsClientError(ErrNoDailyStatus))
	assert.False(t, IsClientError(errors.New("disk full")))
	assert.False(t, IsClientError(nil))
}

func TestPromptHistoryEntry_PrimaryTag(t *testing.T) {
	assert.Equal(t, "general", (&PromptHistoryEntry{}).PrimaryTag())
	assert.Equal(t, "sensory", (&PromptHistoryEntry{TagsUsed: []string{"sensory", "grounding"}}).PrimaryTag())
}
