package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Wrap soft-wraps text to width columns without padding short lines.
func Wrap(text string, width int) string {
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// HumanDay labels a YYYY-MM-DD date relative to today.
func HumanDay(date, today string) string {
	if date == today {
		return "Today"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	now, err := time.Parse("2006-01-02", today)
	if err == nil && now.AddDate(0, 0, -1).Equal(t) {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestampFrom returns a human-friendly relative timestamp string
// measured from now.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ScoreDots renders a 0..max rubric score as filled and empty dots.
func ScoreDots(score, max int) string {
	if score < 0 {
		score = 0
	}
	if score > max {
		score = max
	}
	return StylePurple.Render(strings.Repeat("●", score)) + StyleDim.Render(strings.Repeat("○", max-score))
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// Plural picks the singular or plural noun for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
