package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/keyring"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// authStatus is the output of `bluum auth status`.
type authStatus struct {
	KeyringAvailable bool `json:"keyringAvailable"`
	KeyStored        bool `json:"keyStored"`
	CoachingEnabled  bool `json:"coachingEnabled"`
}

func newAuthCmd(app *App, opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the model API key used for coaching",
	}
	cmd.AddCommand(
		newAuthSetKeyCmd(app, opts),
		newAuthClearKeyCmd(opts),
		newAuthStatusCmd(app, opts),
	)
	return cmd
}

func newAuthSetKeyCmd(app *App, opts *globalOpts) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key in the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key = strings.TrimSpace(key)
			if key == "" {
				if !app.interactive() {
					return domain.Validationf("--key is required")
				}
				if err := apiKeyForm(&key).RunWithContext(cmd.Context()); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				key = strings.TrimSpace(key)
			}
			if !keyring.Available() {
				return domain.Conflictf("The OS keyring is not available; set OPENROUTER_API_KEY or GEMINI_API_KEY instead")
			}
			if err := keyring.SetAPIKey(key); err != nil {
				return err
			}
			return opts.render(cmd, map[string]bool{"stored": true}, func() string {
				return formatter.StyleGreen.Render("✔ ") + "API key stored in the OS keyring\n"
			})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key (prompted for when omitted)")
	return cmd
}

func newAuthClearKeyCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-key",
		Short: "Remove the API key from the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := keyring.DeleteAPIKey()
			if errors.Is(err, keyring.ErrNotFound) {
				return domain.NotFoundf("No API key is stored")
			}
			if err != nil {
				return err
			}
			return opts.render(cmd, map[string]bool{"cleared": true}, func() string {
				return formatter.StyleGreen.Render("✔ ") + "API key removed\n"
			})
		},
	}
}

func newAuthStatusCmd(app *App, opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API key comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := authStatus{
				KeyringAvailable: keyring.Available(),
				CoachingEnabled:  app.CoachingEnabled,
			}
			if st.KeyringAvailable {
				_, err := keyring.GetAPIKey()
				st.KeyStored = err == nil
			}
			return opts.render(cmd, st, func() string {
				coaching := "fallback messages only"
				if st.CoachingEnabled {
					coaching = "model coaching on"
				}
				return formatter.RenderKV([][2]string{
					{"Keyring", formatter.Check(st.KeyringAvailable, "available", "unavailable")},
					{"Stored key", formatter.Check(st.KeyStored, "yes", "no")},
					{"Coaching", coaching},
				})
			})
		},
	}
}
