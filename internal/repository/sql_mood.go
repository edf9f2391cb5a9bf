package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLMoodRepo implements MoodRepo over db.DBTX.
type SQLMoodRepo struct {
	db db.DBTX
}

func NewSQLMoodRepo(conn db.DBTX) *SQLMoodRepo {
	return &SQLMoodRepo{db: conn}
}

// Replace keeps one row per day; a second log overwrites rating, tags and
// note but keeps the first id and creation time.
func (r *SQLMoodRepo) Replace(ctx context.Context, m *domain.MoodLog) error {
	tags, err := encodeTags(m.Tags)
	if err != nil {
		return err
	}
	query := `INSERT INTO mood_logs (id, user_id, date_local, rating, tags, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date_local) DO UPDATE SET
			rating = excluded.rating,
			tags = excluded.tags,
			note = excluded.note,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.DateLocal,
		m.Rating,
		tags,
		m.Note,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("replacing mood log: %w", err)
	}
	return nil
}

func (r *SQLMoodRepo) Get(ctx context.Context, userID, dateLocal string) (*domain.MoodLog, error) {
	query := `SELECT id, user_id, date_local, rating, tags, note, created_at, updated_at
		FROM mood_logs WHERE user_id = ? AND date_local = ?`
	var m domain.MoodLog
	var tags, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, userID, dateLocal).
		Scan(&m.ID, &m.UserID, &m.DateLocal, &m.Rating, &tags, &m.Note, &createdAt, &updatedAt)
	if err != nil {
		return nil, scanErr("mood log", err)
	}
	if m.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
