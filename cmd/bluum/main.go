package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/bluum/internal/blob"
	"github.com/alexanderramin/bluum/internal/cli"
	"github.com/alexanderramin/bluum/internal/coaching"
	"github.com/alexanderramin/bluum/internal/config"
	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/keyring"
	"github.com/alexanderramin/bluum/internal/llm"
	"github.com/alexanderramin/bluum/internal/logging"
	"github.com/alexanderramin/bluum/internal/prompt"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/alexanderramin/bluum/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code, err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(ctx context.Context) (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return 0, err
	}
	defer closeLog.Close()
	slog.SetDefault(logger)

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return 0, err
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLUserRepo(database)
	statusRepo := repository.NewSQLDailyStatusRepo(database)
	historyRepo := repository.NewSQLPromptHistoryRepo(database)
	reflectionRepo := repository.NewSQLReflectionRepo(database)
	addendumRepo := repository.NewSQLAddendumRepo(database)
	summaryRepo := repository.NewSQLSummaryRepo(database)
	momentRepo := repository.NewSQLMomentRepo(database)

	uow := db.NewUnitOfWork(database)

	catalog, err := prompt.DefaultCatalog()
	if err != nil {
		return 0, err
	}
	policy := prompt.NewPolicy(catalog, cfg.Thresholds)

	client := newLLMClient(ctx, logger)
	pipeline, err := coaching.New(client, logger)
	if err != nil {
		return 0, err
	}

	observer := service.NewLogUseCaseObserver(logger)
	cycles := service.NewCycleService(statusRepo, historyRepo, policy, uow, nil, observer)

	app := &cli.App{
		Users:       service.NewUserService(userRepo, nil, observer),
		Cycles:      cycles,
		Reflections: service.NewReflectionService(cycles, reflectionRepo, addendumRepo, pipeline, uow, nil, cfg.StreakLookbackDays, observer),
		Moods:       service.NewMoodService(cycles, uow, nil, observer),
		Streaks:     service.NewStreakService(reflectionRepo, cfg.StreakLookbackDays, nil),
		Summaries:   service.NewSummaryService(summaryRepo),
		Moments:     service.NewMomentService(momentRepo, blob.NewFSStore(cfg.BlobDir, cfg.BlobBaseURL), nil, observer),
		Reminders:   service.NewReminderService(nil),

		DefaultUser:     cfg.User,
		CoachingEnabled: client != nil,
		Logger:          logger,
	}

	// Forms and the checkin screen need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	return cli.Execute(ctx, app, os.Args[1:], os.Stdout, os.Stderr), nil
}

// newLLMClient returns nil when coaching is disabled or no key is
// configured; the pipeline then answers with fallbacks.
func newLLMClient(ctx context.Context, logger *slog.Logger) llm.LLMClient {
	llmCfg := llm.LoadConfig()
	if !llmCfg.Enabled {
		return nil
	}
	if llmCfg.APIKey == "" {
		key, err := keyring.GetAPIKey()
		switch {
		case err == nil:
			llmCfg.APIKey = key
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Warn("keyring_unavailable", "error", err)
		}
	}

	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(ctx, llmCfg, observer)
	if err != nil {
		if !errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Warn("llm_client_unavailable", "provider", string(llmCfg.Provider), "error", err)
		}
		return nil
	}
	return client
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
