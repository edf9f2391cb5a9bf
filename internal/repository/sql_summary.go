package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLSummaryRepo implements SummaryRepo over db.DBTX.
type SQLSummaryRepo struct {
	db db.DBTX
}

func NewSQLSummaryRepo(conn db.DBTX) *SQLSummaryRepo {
	return &SQLSummaryRepo{db: conn}
}

func (r *SQLSummaryRepo) Create(ctx context.Context, s *domain.Summary) error {
	query := `INSERT INTO summaries (id, user_id, period_type, period_start_local, period_end_local, summary_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, string(s.PeriodType), s.PeriodStartLocal, s.PeriodEndLocal, s.SummaryText, formatTime(s.CreatedAt),
	)
	if err != nil {
		return insertErr("summary", err)
	}
	return nil
}

func (r *SQLSummaryRepo) List(ctx context.Context, userID string, period *domain.PeriodType, limit int) ([]*domain.Summary, error) {
	query := `SELECT id, user_id, period_type, period_start_local, period_end_local, summary_text, created_at
		FROM summaries WHERE user_id = ?`
	args := []any{userID}
	if period != nil {
		query += ` AND period_type = ?`
		args = append(args, string(*period))
	}
	query += ` ORDER BY period_start_local DESC, period_type LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	defer rows.Close()

	var out []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		var periodType, createdAt string
		if err := rows.Scan(&s.ID, &s.UserID, &periodType, &s.PeriodStartLocal, &s.PeriodEndLocal, &s.SummaryText, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		s.PeriodType = domain.PeriodType(periodType)
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summaries: %w", err)
	}
	return out, nil
}
