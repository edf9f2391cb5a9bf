package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// render writes v as JSON under --json, otherwise the formatted text.
func (o *globalOpts) render(cmd *cobra.Command, v any, text func() string) error {
	out := cmd.OutOrStdout()
	if o.json {
		return writeJSON(out, v)
	}
	_, err := fmt.Fprint(out, text())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// currentUser resolves --user, falling back to the configured default.
func (o *globalOpts) currentUser(cmd *cobra.Command, app *App) (*domain.User, error) {
	return app.Users.Resolve(cmd.Context(), domain.CoalesceStr(strings.TrimSpace(o.user), app.DefaultUser))
}

// ErrorMessage is the line shown for a failed command. Caller-facing errors
// keep their message; anything else is logged in full and summarized.
func ErrorMessage(app *App, err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return formatter.StyleRed.Render("✖ ") + de.Error()
	}
	if app != nil && app.Logger != nil {
		app.Logger.Error("command_failed", "error", err.Error())
	}
	return formatter.StyleRed.Render("✖ ") + "Something went wrong. Details were written to the log."
}

// joinArgs treats positional arguments as one free-text value.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// addDateFlag registers the --date flag shared by the day-scoped commands.
func addDateFlag(fs *pflag.FlagSet, p *string) {
	fs.StringVar(p, "date", "", "Local date (YYYY-MM-DD), defaults to today")
}
