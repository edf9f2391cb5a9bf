package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// bluumHuhTheme returns a huh theme matching the formatter palette.
func bluumHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(bluumHuhTheme()).WithShowHelp(false)
}

// reflectionForm asks for the day's reflection under the prompt text.
func reflectionForm(promptText string, value *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewText().
			Title(promptText).
			Description("A sentence or two is plenty.").
			CharLimit(2000).
			Value(value).
			Validate(validateRequiredText(2000)),
	))
}

func addendumForm(value *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewText().
			Title("Anything to add to today's reflection?").
			CharLimit(400).
			Value(value).
			Validate(validateRequiredText(400)),
	))
}

// moodForm collects a rating, comma-separated tags and an optional note.
func moodForm(rating *int, tags, note *string) *huh.Form {
	options := make([]huh.Option[int], 0, 5)
	for r := 5; r >= 1; r-- {
		options = append(options, huh.NewOption(fmt.Sprintf("%d · %s", r, formatter.MoodLabel(r)), r))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How are you feeling?").
				Options(options...).
				Value(rating),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tags (optional, comma separated)").
				Placeholder("calm, tired").
				Value(tags).
				Validate(validateTags),
			huh.NewInput().
				Title("Note (optional)").
				CharLimit(200).
				Value(note),
		),
	)
}

// onboardForm collects the profile fields. Defaults come from the pointers.
func onboardForm(name, zone *string, reminder *bool, reminderTime *string) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				CharLimit(50).
				Value(name).
				Validate(validateRequiredText(50)),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, like Europe/London").
				Value(zone).
				Validate(validateTimezone),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Remind me to reflect each evening?").
				Value(reminder),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Placeholder("20:30").
				Value(reminderTime).
				Validate(validateOptionalClock),
		),
	)
}

func apiKeyForm(value *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Model API key").
			EchoMode(huh.EchoModePassword).
			Value(value).
			Validate(validateRequiredText(512)),
	))
}

func validateRequiredText(maxRunes int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("write at least a few words")
		}
		if utf8.RuneCountInString(s) > maxRunes {
			return fmt.Errorf("keep it under %d characters", maxRunes)
		}
		return nil
	}
}

func validateTags(s string) error {
	if len(splitTags(s)) > 5 {
		return fmt.Errorf("use at most 5 tags")
	}
	return nil
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// validateOptionalClock accepts empty or an HH:MM time.
func validateOptionalClock(s string) error {
	if s == "" || clockPattern.MatchString(s) {
		return nil
	}
	return fmt.Errorf("use HH:MM, like 20:30")
}

func validateTimezone(s string) error {
	if _, err := time.LoadLocation(strings.TrimSpace(s)); err != nil || strings.TrimSpace(s) == "" {
		return fmt.Errorf("unknown timezone")
	}
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
