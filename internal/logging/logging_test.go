package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "bluum.log")

	logger, closer, err := New(Config{Level: "info", File: file})
	require.NoError(t, err)

	logger.Info("cycle_created", "user_id", "u1", "date_local", "2024-03-15")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cycle_created")
	assert.Contains(t, string(data), "date_local=2024-03-15")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_NoFileDiscards(t *testing.T) {
	logger, closer, err := New(Config{})
	require.NoError(t, err)
	logger.Warn("nothing listens")
	assert.NoError(t, closer.Close())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "warn")
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("coaching_degraded", "stage", "coach")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "coaching_degraded")
	assert.Contains(t, buf.String(), "stage=coach")
}
