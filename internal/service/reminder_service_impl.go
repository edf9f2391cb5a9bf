package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/messages"
)

type reminderService struct {
	clock Clock
}

func NewReminderService(clock Clock) ReminderService {
	return &reminderService{clock: clockOrDefault(clock)}
}

// Preview shows which reminder the user would receive for the date. Nothing
// is sent.
func (s *reminderService) Preview(_ context.Context, user *domain.User, pool, date string) (*contract.ReminderResponse, error) {
	dateLocal, err := resolveDate(date, user.Timezone, s.clock())
	if err != nil {
		return nil, err
	}
	p := domain.ReminderPool(strings.ToLower(strings.TrimSpace(domain.CoalesceStr(pool, string(domain.PoolEvening)))))
	msg, err := messages.Reminder(user.ID, dateLocal, p)
	if err != nil {
		return nil, err
	}
	return &contract.ReminderResponse{DateLocal: dateLocal, Pool: string(p), Message: msg}, nil
}
