package messages

import (
	"fmt"

	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/seed"
)

var eveningReminders = []string{
	"A moment for gratitude before the day ends?",
	"Quick check-in: noticed anything good today?",
	"Evening reminder: your reflection awaits.",
	"Before you wind down, one thing you appreciated today?",
	"Day's almost done. Time for a quick reflection?",
	"Haven't reflected yet today. Got a moment?",
	"Your daily gratitude check-in is waiting.",
	"One small reflection before bed?",
	"End your day with a moment of appreciation?",
	"Quick reminder: capture something good from today.",
	"Your gratitude practice is waiting for you.",
	"A brief pause to notice something positive?",
	"Before the day ends, what went well?",
	"Evening nudge: time for your reflection.",
	"One moment of gratitude before tomorrow?",
}

var followupReminders = []string{
	"Still time to reflect on today.",
	"One quick thought before tomorrow?",
	"Your streak is waiting.",
	"A moment now, or catch up tomorrow.",
	"Last chance for today's reflection.",
	"Even a short reflection counts.",
	"Quick note before the day resets?",
}

// ReminderPool returns a copy of the named pool, or nil for unknown pools.
func ReminderPool(pool domain.ReminderPool) []string {
	switch pool {
	case domain.PoolEvening:
		return append([]string(nil), eveningReminders...)
	case domain.PoolFollowup:
		return append([]string(nil), followupReminders...)
	}
	return nil
}

// Reminder picks the reminder copy for a user and date. Nothing is sent;
// delivery belongs to whatever schedules reminders.
func Reminder(userID, dateLocal string, pool domain.ReminderPool) (string, error) {
	msgs := ReminderPool(pool)
	if len(msgs) == 0 {
		return "", domain.Validationf("unknown reminder pool %q (expected evening or followup)", pool)
	}
	key := fmt.Sprintf("%s-%s-%s", userID, dateLocal, pool)
	return msgs[seed.Index(key, len(msgs))], nil
}
