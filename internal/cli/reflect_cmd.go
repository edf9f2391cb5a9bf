package cli

import (
	"errors"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newReflectCmd(app *App, opts *globalOpts) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reflect [text]",
		Short: "Answer today's prompt (once per day)",
		Long: "Answer today's prompt. Pass the reflection as arguments, or run\n" +
			"without arguments in a terminal to write it in a form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}

			text := joinArgs(args)
			if text == "" {
				if !app.interactive() {
					return domain.Validationf("Reflection text is required")
				}
				today, err := app.Cycles.Today(ctx, user, date)
				if err != nil {
					return err
				}
				if today.HasReflected {
					return domain.ErrReflectionExists
				}
				if err := reflectionForm(today.Prompt.Text, &text).RunWithContext(ctx); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}

			stop := func() {}
			if app.CoachingEnabled && app.interactive() && !opts.json {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Reading your reflection...")
			}
			resp, err := app.Reflections.Submit(ctx, user, contract.ReflectRequest{Date: date, ResponseText: text})
			stop()
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatReflection(resp) })
		},
	}

	addDateFlag(cmd.Flags(), &date)
	return cmd
}

func newAddendumCmd(app *App, opts *globalOpts) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "addendum [text]",
		Short: "Add one follow-up note to today's reflection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}

			text := joinArgs(args)
			if text == "" {
				if !app.interactive() {
					return domain.Validationf("Addendum text is required")
				}
				if err := addendumForm(&text).RunWithContext(ctx); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}

			resp, err := app.Reflections.AddAddendum(ctx, user, contract.AddendumRequest{Date: date, Text: text})
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatAddendum(resp) })
		},
	}

	addDateFlag(cmd.Flags(), &date)
	return cmd
}
