package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newMoodCmd(app *App, opts *globalOpts) *cobra.Command {
	var (
		date   string
		rating int
		tags   []string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log how you feel today (1-5); logging again replaces it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("rating") {
				if !app.interactive() {
					return domain.Validationf("--rating is required")
				}
				rating = 3
				var tagText string
				if err := moodForm(&rating, &tagText, &note).RunWithContext(ctx); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				tags = splitTags(tagText)
			}

			resp, err := app.Moods.Log(ctx, user, contract.MoodRequest{
				Date:   date,
				Rating: rating,
				Tags:   tags,
				Note:   strings.TrimSpace(note),
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatMood(resp) })
		},
	}

	addDateFlag(cmd.Flags(), &date)
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Mood from 1 (rough) to 5 (great)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Mood tag, repeatable (max 5)")
	cmd.Flags().StringVar(&note, "note", "", "Short note (max 200 characters)")
	return cmd
}
