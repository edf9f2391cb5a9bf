// Package config resolves runtime settings from BLUUM_* environment
// variables over built-in defaults. Model settings live in llm.LoadConfig.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/prompt"
	"github.com/alexanderramin/bluum/internal/streak"
)

type Config struct {
	DataDir string

	DBDriver db.Dialect
	DBDSN    string

	LogLevel string
	LogFile  string
	Debug    bool

	// User is the external identity used when --user is not given.
	User string

	Thresholds         prompt.Thresholds
	StreakLookbackDays int

	BlobDir     string
	BlobBaseURL string
}

// Default returns settings rooted at ~/.bluum.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return defaultsFor(filepath.Join(home, ".bluum")), nil
}

func defaultsFor(dataDir string) Config {
	return Config{
		DataDir:            dataDir,
		DBDriver:           db.DialectSQLite,
		DBDSN:              filepath.Join(dataDir, "bluum.db"),
		LogLevel:           "warn",
		LogFile:            filepath.Join(dataDir, "logs", "bluum.log"),
		User:               osUsername(),
		Thresholds:         prompt.DefaultThresholds(),
		StreakLookbackDays: streak.DefaultLookbackDays,
		BlobDir:            filepath.Join(dataDir, "blobs"),
		BlobBaseURL:        "file://" + filepath.ToSlash(filepath.Join(dataDir, "blobs")),
	}
}

// Load applies environment overrides to the defaults. Malformed values are
// errors rather than silently ignored.
func Load() (Config, error) {
	dataDir := os.Getenv("BLUUM_DATA_DIR")
	var cfg Config
	if dataDir == "" {
		var err error
		if cfg, err = Default(); err != nil {
			return Config{}, err
		}
	} else {
		cfg = defaultsFor(dataDir)
	}

	if v := os.Getenv("BLUUM_DB_DRIVER"); v != "" {
		d, err := db.ParseDialect(v)
		if err != nil {
			return Config{}, err
		}
		cfg.DBDriver = d
		if d == db.DialectPostgres {
			cfg.DBDSN = ""
		}
	}
	if v := os.Getenv("BLUUM_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("BLUUM_DB_DSN is required for driver %s", cfg.DBDriver)
	}

	if v := os.Getenv("BLUUM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("BLUUM_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("BLUUM_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("BLUUM_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if v := os.Getenv("BLUUM_USER"); v != "" {
		cfg.User = v
	}

	ints := []struct {
		env string
		dst *int
		min int
	}{
		{"BLUUM_RECENT_PROMPT_WINDOW", &cfg.Thresholds.RecentIDWindow, 0},
		{"BLUUM_MIN_AFTER_ID_EXCLUSION", &cfg.Thresholds.MinAfterIDExclusion, 1},
		{"BLUUM_MIN_AFTER_TAG_EXCLUSION", &cfg.Thresholds.MinAfterTagExclusion, 1},
		{"BLUUM_STREAK_LOOKBACK_DAYS", &cfg.StreakLookbackDays, 1},
	}
	for _, it := range ints {
		v := os.Getenv(it.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < it.min {
			return Config{}, fmt.Errorf("%s must be an integer >= %d, got %q", it.env, it.min, v)
		}
		*it.dst = n
	}

	if v := os.Getenv("BLUUM_BLOB_DIR"); v != "" {
		cfg.BlobDir = v
		cfg.BlobBaseURL = "file://" + filepath.ToSlash(v)
	}
	if v := os.Getenv("BLUUM_BLOB_BASE_URL"); v != "" {
		cfg.BlobBaseURL = strings.TrimRight(v, "/")
	}

	return cfg, nil
}

func osUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
