package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bluum/internal/contract"
)

const summaryPreviewRunes = 60

func FormatSummaries(resp *contract.SummariesResponse) string {
	if len(resp.Summaries) == 0 {
		return Dim("No summaries yet.") + "\n"
	}
	rows := make([][]string, 0, len(resp.Summaries))
	for _, s := range resp.Summaries {
		rows = append(rows, []string{
			strings.ToLower(s.PeriodType),
			s.PeriodStartLocal,
			s.PeriodEndLocal,
			Truncate(s.SummaryText, summaryPreviewRunes),
		})
	}
	return RenderTable([]string{"PERIOD", "FROM", "TO", "SUMMARY"}, rows)
}

// FormatMoments lists moments newest first with times relative to now.
func FormatMoments(resp *contract.MomentListResponse, now time.Time) string {
	if len(resp.Moments) == 0 {
		return Dim("No moments yet. Add one with `bluum moment add`.") + "\n"
	}
	var b strings.Builder
	for _, m := range resp.Moments {
		text := m.Text
		if text == "" {
			text = Dim("(photo)")
		}
		fmt.Fprintf(&b, "• %s  %s\n", text, Dim(HumanTimestampFrom(m.CreatedAt, now)))
		if m.ImageURL != "" {
			fmt.Fprintf(&b, "  %s\n", StyleBlue.Render(m.ImageURL))
		}
	}
	if resp.NextCursor != "" {
		fmt.Fprintf(&b, "\n%s\n", Dim("More: bluum moment list --cursor "+resp.NextCursor))
	}
	return b.String()
}

func FormatMoment(m *contract.MomentView) string {
	return StyleGreen.Render("✔ Moment saved") + " " + Dim(m.ID) + "\n"
}

func FormatMe(me contract.MeResponse) string {
	name := me.DisplayName
	if name == "" {
		name = Dim("(not set)")
	}
	reminder := "off"
	if me.ReminderEnabled {
		reminder = "on"
		if me.ReminderTime != "" {
			reminder += " at " + me.ReminderTime
		}
	}
	onboarded := StyleYellow.Render("not yet, run `bluum onboard`")
	if me.OnboardingCompletedAt != nil {
		onboarded = me.OnboardingCompletedAt.Format("Jan 2, 2006")
	}

	var b strings.Builder
	b.WriteString(Header("Profile"))
	b.WriteString("\n")
	b.WriteString(RenderKV([][2]string{
		{"name", name},
		{"user", me.ExternalID},
		{"timezone", me.Timezone},
		{"reminder", reminder},
		{"onboarded", onboarded},
	}))
	return b.String()
}
