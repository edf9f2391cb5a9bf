package cli

import (
	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App, opts *globalOpts) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's prompt and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Cycles.Today(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatToday(resp) })
		},
	}

	addDateFlag(cmd.Flags(), &date)
	return cmd
}

func newSwapCmd(app *App, opts *globalOpts) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap today's prompt for another (once per day, before reflecting)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Cycles.Swap(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatSwap(resp) })
		},
	}

	addDateFlag(cmd.Flags(), &date)
	return cmd
}

func newReminderCmd(app *App, opts *globalOpts) *cobra.Command {
	var pool, date string

	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Preview the reminder message for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Reminders.Preview(cmd.Context(), user, pool, date)
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatReminder(resp) })
		},
	}

	cmd.Flags().StringVar(&pool, "pool", "evening", "Reminder pool: evening or followup")
	addDateFlag(cmd.Flags(), &date)
	return cmd
}
