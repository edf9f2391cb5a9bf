// Package messages picks the encouragement and reminder copy shown around
// a reflection. Picks are deterministic per user and date.
package messages

import (
	"fmt"

	"github.com/alexanderramin/bluum/internal/seed"
)

var defaultSuccess = []string{
	"Nice work taking a moment to reflect today.",
	"Another day of noticing the good. Well done.",
	"Your reflection is saved. Small moments add up.",
	"Thanks for pausing to appreciate something today.",
	"Reflection complete. You showed up for yourself.",
	"Gratitude noted. Keep building that awareness.",
	"You took time to notice what matters. That counts.",
	"Saved. Every reflection strengthens the habit.",
	"Your practice continues. One day at a time.",
	"Reflection logged. You're doing the work.",
	"Another moment captured. Keep going.",
	"You paused and reflected. That's the practice.",
	"Done for today. See you tomorrow.",
	"Reflection saved. Small steps, steady progress.",
	"Good work noticing something positive today.",
}

// milestones are keyed by the reflection count including the new one.
var milestones = map[int]string{
	1:   "You've started your gratitude practice. Day one is done!",
	7:   "One week of reflections! You're building a real habit.",
	21:  "Three weeks in. This practice is becoming part of your routine.",
	30:  "A full month of gratitude reflections. Impressive consistency.",
	50:  "50 reflections. You've built something meaningful here.",
	100: "100 reflections! Your gratitude practice is well established.",
	365: "A full year of gratitude. That's remarkable dedication.",
}

// SuccessContext describes the reflection being celebrated. TotalBefore is
// the number of reflections the user had before this one.
type SuccessContext struct {
	UserID        string
	DateLocal     string
	TotalBefore   int
	CurrentStreak int
}

// Success returns the milestone message when this reflection lands on a
// milestone, otherwise a pick from the default pool.
func Success(ctx SuccessContext) string {
	if msg, ok := Milestone(ctx.TotalBefore + 1); ok {
		return msg
	}
	key := fmt.Sprintf("%s-%s-success", ctx.UserID, ctx.DateLocal)
	return defaultSuccess[seed.Index(key, len(defaultSuccess))]
}

// Milestone returns the message for a reflection count, if it is one.
func Milestone(total int) (string, bool) {
	msg, ok := milestones[total]
	return msg, ok
}

// SuccessPool returns a copy of the default pool.
func SuccessPool() []string {
	return append([]string(nil), defaultSuccess...)
}
