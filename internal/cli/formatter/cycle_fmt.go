package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bluum/internal/contract"
)

const promptWidth = 64

// FormatToday renders the daily card: the prompt plus what is done so far.
func FormatToday(resp *contract.TodayResponse) string {
	var b strings.Builder
	b.WriteString(Header("Today · " + resp.DateLocal))
	b.WriteString("\n\n")
	b.WriteString(Bold(Wrap(resp.Prompt.Text, promptWidth)))
	b.WriteString("\n")
	b.WriteString(Dim("prompt " + resp.Prompt.ID))
	b.WriteString("\n\n")

	swap := StyleBlue.Render("↻ Swap available")
	if resp.DidSwapPrompt {
		swap = Dim("↻ Swapped")
	}
	fmt.Fprintf(&b, "%s   %s   %s\n",
		Check(resp.HasReflected, "Reflected", "Not reflected yet"),
		Check(resp.HasMood, "Mood logged", "No mood yet"),
		swap,
	)

	switch {
	case !resp.OnboardingCompleted:
		b.WriteString("\n" + Dim("Finish setting up with `bluum onboard`.") + "\n")
	case !resp.HasReflected && resp.PrimaryCTA == contract.PrimaryCTAReflect:
		b.WriteString("\n" + Dim("Next: `bluum reflect` or `bluum checkin`.") + "\n")
	}
	return b.String()
}

func FormatSwap(resp *contract.SwapResponse) string {
	return fmt.Sprintf("%s\n\n%s\n%s\n",
		StyleGreen.Render("↻ New prompt for "+resp.DateLocal),
		Bold(Wrap(resp.Prompt.Text, promptWidth)),
		Dim("prompt "+resp.Prompt.ID+" · no more swaps today"),
	)
}

func FormatReminder(resp *contract.ReminderResponse) string {
	return fmt.Sprintf("%s %s\n", StylePurple.Render("["+resp.Pool+"]"), resp.Message)
}
