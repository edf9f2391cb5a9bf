package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Users       service.UserService
	Cycles      service.CycleService
	Reflections service.ReflectionService
	Moods       service.MoodService
	Streaks     service.StreakService
	Summaries   service.SummaryService
	Moments     service.MomentService
	Reminders   service.ReminderService

	// DefaultUser is the external id used when --user is not given.
	DefaultUser string
	// CoachingEnabled reports whether a model client is wired.
	CoachingEnabled bool

	Logger        *slog.Logger
	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// globalOpts are the persistent flags shared by every subcommand.
type globalOpts struct {
	user string
	json bool
}

// NewRootCmd creates the top-level "bluum" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &globalOpts{}
	root := &cobra.Command{
		Use:           "bluum",
		Short:         "A daily gratitude reflection, one prompt at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.user, "user", "", "User id (defaults to BLUUM_USER or the OS username)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print JSON instead of formatted text")

	root.AddCommand(
		newTodayCmd(app, opts),
		newSwapCmd(app, opts),
		newReflectCmd(app, opts),
		newAddendumCmd(app, opts),
		newCheckinCmd(app, opts),
		newMoodCmd(app, opts),
		newStreaksCmd(app, opts),
		newSummariesCmd(app, opts),
		newMomentCmd(app, opts),
		newOnboardCmd(app, opts),
		newMeCmd(app, opts),
		newReminderCmd(app, opts),
		newAuthCmd(app, opts),
	)

	return root
}

// Execute runs the command tree with args and prints any failure to errOut.
// It returns the process exit code.
func Execute(ctx context.Context, app *App, args []string, out, errOut io.Writer) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	// Flag and argument errors happen before any pre-run hook.
	started := false
	root.PersistentPreRun = func(*cobra.Command, []string) { started = true }

	if err := root.ExecuteContext(ctx); err != nil {
		if !started {
			fmt.Fprintln(errOut, formatter.StyleRed.Render("✖ ")+err.Error())
			fmt.Fprintln(errOut, formatter.Dim("Run `bluum --help` for usage."))
			return 2
		}
		if !errors.Is(err, errCheckinFailed) {
			fmt.Fprintln(errOut, ErrorMessage(app, err))
		}
		return 1
	}
	return 0
}
