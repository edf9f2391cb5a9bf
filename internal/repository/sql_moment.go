package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLMomentRepo implements MomentRepo over db.DBTX. Ids are time-ordered
// (uuid v7), so id order is creation order.
type SQLMomentRepo struct {
	db db.DBTX
}

func NewSQLMomentRepo(conn db.DBTX) *SQLMomentRepo {
	return &SQLMomentRepo{db: conn}
}

func (r *SQLMomentRepo) Create(ctx context.Context, m *domain.GratitudeMoment) error {
	query := `INSERT INTO gratitude_moments (id, user_id, text, image_url, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.Text, m.ImageURL, formatTime(m.CreatedAt)); err != nil {
		return insertErr("gratitude moment", err)
	}
	return nil
}

func (r *SQLMomentRepo) List(ctx context.Context, q MomentQuery) ([]*domain.GratitudeMoment, error) {
	query := `SELECT id, user_id, text, image_url, created_at FROM gratitude_moments WHERE user_id = ?`
	args := []any{q.UserID}
	if q.Cursor != "" {
		query += ` AND id < ?`
		args = append(args, q.Cursor)
	}
	if q.Search != "" {
		query += ` AND LOWER(text) LIKE LOWER(?)`
		args = append(args, "%"+q.Search+"%")
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing gratitude moments: %w", err)
	}
	defer rows.Close()

	var out []*domain.GratitudeMoment
	for rows.Next() {
		var m domain.GratitudeMoment
		var createdAt string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Text, &m.ImageURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning gratitude moment: %w", err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gratitude moments: %w", err)
	}
	return out, nil
}
