package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLPromptHistoryRepo implements PromptHistoryRepo over db.DBTX.
type SQLPromptHistoryRepo struct {
	db db.DBTX
}

func NewSQLPromptHistoryRepo(conn db.DBTX) *SQLPromptHistoryRepo {
	return &SQLPromptHistoryRepo{db: conn}
}

func (r *SQLPromptHistoryRepo) Create(ctx context.Context, h *domain.PromptHistoryEntry) error {
	tags, err := encodeTags(h.TagsUsed)
	if err != nil {
		return err
	}
	query := `INSERT INTO prompt_history (id, user_id, date_local, prompt_id, tags_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.DateLocal, h.PromptID, tags, formatTime(h.CreatedAt),
	); err != nil {
		return insertErr("prompt history", err)
	}
	return nil
}

// Replace overwrites the prompt and tags for the entry's day, keeping the
// original id and creation time when a row exists.
func (r *SQLPromptHistoryRepo) Replace(ctx context.Context, h *domain.PromptHistoryEntry) error {
	tags, err := encodeTags(h.TagsUsed)
	if err != nil {
		return err
	}
	query := `INSERT INTO prompt_history (id, user_id, date_local, prompt_id, tags_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date_local) DO UPDATE SET
			prompt_id = excluded.prompt_id,
			tags_used = excluded.tags_used`
	if _, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.DateLocal, h.PromptID, tags, formatTime(h.CreatedAt),
	); err != nil {
		return fmt.Errorf("replacing prompt history: %w", err)
	}
	return nil
}

func (r *SQLPromptHistoryRepo) Get(ctx context.Context, userID, dateLocal string) (*domain.PromptHistoryEntry, error) {
	query := `SELECT id, user_id, date_local, prompt_id, tags_used, created_at
		FROM prompt_history WHERE user_id = ? AND date_local = ?`
	return scanHistory(r.db.QueryRowContext(ctx, query, userID, dateLocal))
}

func (r *SQLPromptHistoryRepo) ListBefore(ctx context.Context, userID, dateLocal string, limit int) ([]*domain.PromptHistoryEntry, error) {
	query := `SELECT id, user_id, date_local, prompt_id, tags_used, created_at
		FROM prompt_history
		WHERE user_id = ? AND date_local < ?
		ORDER BY date_local DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, dateLocal, limit)
	if err != nil {
		return nil, fmt.Errorf("listing prompt history: %w", err)
	}
	defer rows.Close()

	var out []*domain.PromptHistoryEntry
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompt history: %w", err)
	}
	return out, nil
}

func scanHistory(row scanner) (*domain.PromptHistoryEntry, error) {
	var h domain.PromptHistoryEntry
	var tags, createdAt string
	if err := row.Scan(&h.ID, &h.UserID, &h.DateLocal, &h.PromptID, &tags, &createdAt); err != nil {
		return nil, scanErr("prompt history", err)
	}
	var err error
	if h.TagsUsed, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &h, nil
}
