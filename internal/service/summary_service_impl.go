package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/repository"
)

type summaryService struct {
	summaries repository.SummaryRepo
}

func NewSummaryService(summaries repository.SummaryRepo) SummaryService {
	return &summaryService{summaries: summaries}
}

func (s *summaryService) List(ctx context.Context, user *domain.User, req contract.SummariesRequest) (*contract.SummariesResponse, error) {
	var period *domain.PeriodType
	switch strings.ToLower(strings.TrimSpace(req.Type)) {
	case "":
	case "weekly":
		p := domain.PeriodWeekly
		period = &p
	case "monthly":
		p := domain.PeriodMonthly
		period = &p
	default:
		return nil, domain.Validationf("Invalid summary type %q. Use weekly or monthly", req.Type)
	}

	limit := req.Limit
	if limit == 0 {
		limit = contract.DefaultSummaryLimit
	}
	limit = domain.ClampInt(limit, 1, contract.MaxSummaryLimit)

	rows, err := s.summaries.List(ctx, user.ID, period, limit)
	if err != nil {
		return nil, err
	}
	resp := &contract.SummariesResponse{Summaries: make([]contract.SummaryView, 0, len(rows))}
	for _, r := range rows {
		resp.Summaries = append(resp.Summaries, contract.SummaryView{
			ID:               r.ID,
			PeriodType:       string(r.PeriodType),
			PeriodStartLocal: r.PeriodStartLocal,
			PeriodEndLocal:   r.PeriodEndLocal,
			SummaryText:      r.SummaryText,
		})
	}
	return resp, nil
}
