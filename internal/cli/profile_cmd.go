package cli

import (
	"errors"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newOnboardCmd(app *App, opts *globalOpts) *cobra.Command {
	var (
		name         string
		timezone     string
		reminder     bool
		reminderTime string
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set your name, timezone and reminder preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}

			req := contract.OnboardRequest{
				DisplayName:  name,
				Timezone:     timezone,
				ReminderTime: reminderTime,
			}
			if cmd.Flags().Changed("reminder") {
				req.ReminderEnabled = &reminder
			}

			if !cmd.Flags().Changed("name") {
				if !app.interactive() {
					return domain.Validationf("--name is required")
				}
				req.DisplayName = user.DisplayName
				req.Timezone = domain.CoalesceStr(timezone, user.Timezone, "UTC")
				req.ReminderTime = domain.CoalesceStr(reminderTime, user.ReflectionReminderTimeLocal)
				enabled := user.ReflectionReminderEnabled
				if err := onboardForm(&req.DisplayName, &req.Timezone, &enabled, &req.ReminderTime).RunWithContext(ctx); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				req.ReminderEnabled = &enabled
			}

			updated, err := app.Users.Onboard(ctx, user, req)
			if err != nil {
				return err
			}
			me := contract.NewMeResponse(updated)
			return opts.render(cmd, me, func() string {
				return formatter.StyleGreen.Render("✔ ") + "Profile saved\n\n" + formatter.FormatMe(me)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (1-50 characters)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, like America/New_York")
	cmd.Flags().BoolVar(&reminder, "reminder", false, "Enable the daily reflection reminder")
	cmd.Flags().StringVar(&reminderTime, "reminder-time", "", "Reminder time as HH:MM")
	return cmd
}

func newMeCmd(app *App, opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			me := contract.NewMeResponse(user)
			return opts.render(cmd, me, func() string { return formatter.FormatMe(me) })
		},
	}
}
