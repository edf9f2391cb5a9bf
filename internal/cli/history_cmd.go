package cli

import (
	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/spf13/cobra"
)

func newStreaksCmd(app *App, opts *globalOpts) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Show current and longest reflection streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Streaks.Get(cmd.Context(), user, asOf)
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatStreaks(resp) })
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Local date (YYYY-MM-DD), defaults to today")
	return cmd
}

func newSummariesCmd(app *App, opts *globalOpts) *cobra.Command {
	req := contract.NewSummariesRequest()

	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "List weekly and monthly summaries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Summaries.List(cmd.Context(), user, req)
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatSummaries(resp) })
		},
	}

	cmd.Flags().StringVar(&req.Type, "type", "", "Filter by period: weekly or monthly")
	cmd.Flags().IntVar(&req.Limit, "limit", contract.DefaultSummaryLimit, "Maximum summaries to show (1-50)")
	return cmd
}
