package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bluum/internal/contract"
)

const maxRubricScore = 2

// FormatReflection renders the result of a submission. Flagged reflections
// show the support resources and nothing else.
func FormatReflection(resp *contract.ReflectResponse) string {
	if resp.SafetyFlagged && resp.SafeResponse != nil {
		return FormatSafeResponse(resp.SafeResponse)
	}

	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Reflection saved for " + resp.DateLocal))
	b.WriteString("\n\n")
	if c := resp.Coach; c != nil {
		fmt.Fprintf(&b, "%s  %s\n", CoachBadge(c.Type), Wrap(c.Text, promptWidth))
		if s := c.Scores; s != nil {
			fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
				Dim("specificity"), ScoreDots(s.Specificity, maxRubricScore),
				Dim("meaning"), ScoreDots(s.Meaning, maxRubricScore),
				Dim("emotion"), ScoreDots(s.Emotion, maxRubricScore),
			)
		}
		b.WriteString("\n")
	}
	if resp.SuccessMessage != "" {
		b.WriteString(StyleYellow.Render(resp.SuccessMessage))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("Streak: %s · %s",
		Plural(resp.CurrentStreak, "day", "days"),
		Plural(resp.TotalReflections, "reflection", "reflections"),
	)))
	return b.String()
}

// FormatSafeResponse renders the crisis support message in a box.
func FormatSafeResponse(s *contract.SafeResponseView) string {
	var b strings.Builder
	b.WriteString(Wrap(s.Message, promptWidth))
	b.WriteString("\n")
	for _, r := range s.Resources {
		fmt.Fprintf(&b, "\n• %s: %s", Bold(r.Label), r.Value)
	}
	return RenderBox("Support is available", b.String()) + "\n"
}

func FormatAddendum(resp *contract.AddendumResponse) string {
	return fmt.Sprintf("%s\n%s\n",
		StyleGreen.Render("✔ Addendum added to "+resp.DateLocal),
		Dim(Wrap(resp.Text, promptWidth)),
	)
}

func FormatStreaks(resp *contract.StreaksResponse) string {
	var b strings.Builder
	b.WriteString(Header("Streaks"))
	b.WriteString("\n")
	b.WriteString(RenderKV([][2]string{
		{"as of", resp.AsOf},
		{"current", Bold(Plural(resp.CurrentStreak, "day", "days"))},
		{"longest", Plural(resp.LongestStreak, "day", "days")},
		{"total", Plural(resp.TotalReflections, "reflection", "reflections")},
	}))
	b.WriteString(RenderStreakBar(resp.CurrentStreak, resp.LongestStreak, 20))
	b.WriteString("\n")
	return b.String()
}
