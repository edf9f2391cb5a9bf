package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bluum/internal/contract"
)

const maxMoodRating = 5

var moodLabels = map[int]string{
	1: "rough",
	2: "low",
	3: "okay",
	4: "good",
	5: "great",
}

// MoodLabel names a 1..5 rating.
func MoodLabel(rating int) string {
	if l, ok := moodLabels[rating]; ok {
		return l
	}
	return "?"
}

func FormatMood(resp *contract.MoodResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		StyleGreen.Render("✔ Mood logged for "+resp.DateLocal+":"),
		ScoreDots(resp.Rating, maxMoodRating),
		Dim(fmt.Sprintf("(%d/%d, %s)", resp.Rating, maxMoodRating, MoodLabel(resp.Rating))),
	)
	if len(resp.Tags) > 0 {
		tags := make([]string, len(resp.Tags))
		for i, t := range resp.Tags {
			tags[i] = "#" + t
		}
		b.WriteString(StylePurple.Render(strings.Join(tags, " ")))
		b.WriteString("\n")
	}
	if resp.Note != "" {
		b.WriteString(Dim(resp.Note))
		b.WriteString("\n")
	}
	return b.String()
}
