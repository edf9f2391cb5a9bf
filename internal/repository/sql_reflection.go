package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLReflectionRepo implements ReflectionRepo over db.DBTX. Reflections are
// write-once; there is no update path.
type SQLReflectionRepo struct {
	db db.DBTX
}

func NewSQLReflectionRepo(conn db.DBTX) *SQLReflectionRepo {
	return &SQLReflectionRepo{db: conn}
}

func (r *SQLReflectionRepo) Create(ctx context.Context, ref *domain.Reflection) error {
	var scores any
	if ref.Scores != nil {
		b, err := json.Marshal(ref.Scores)
		if err != nil {
			return fmt.Errorf("encoding scores: %w", err)
		}
		scores = string(b)
	}
	query := `INSERT INTO reflections (id, user_id, date_local, prompt_id, prompt_text,
		response_text, coach_type, coach_text, scores, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ref.ID,
		ref.UserID,
		ref.DateLocal,
		ref.Prompt.PromptID,
		ref.Prompt.PromptText,
		ref.ResponseText,
		string(ref.CoachType),
		nullableString(ref.CoachText),
		scores,
		formatTime(ref.CreatedAt),
	)
	if err != nil {
		return insertErr("reflection", err)
	}
	return nil
}

func (r *SQLReflectionRepo) Get(ctx context.Context, userID, dateLocal string) (*domain.Reflection, error) {
	query := `SELECT id, user_id, date_local, prompt_id, prompt_text, response_text,
		coach_type, coach_text, scores, created_at
		FROM reflections WHERE user_id = ? AND date_local = ?`
	row := r.db.QueryRowContext(ctx, query, userID, dateLocal)

	var ref domain.Reflection
	var coachType, createdAt string
	var coachText, scores sql.NullString
	err := row.Scan(&ref.ID, &ref.UserID, &ref.DateLocal, &ref.Prompt.PromptID, &ref.Prompt.PromptText,
		&ref.ResponseText, &coachType, &coachText, &scores, &createdAt)
	if err != nil {
		return nil, scanErr("reflection", err)
	}

	ref.CoachType = domain.CoachType(coachType)
	if coachText.Valid {
		ref.CoachText = &coachText.String
	}
	if scores.Valid && scores.String != "" {
		var s domain.RubricScores
		if err := json.Unmarshal([]byte(scores.String), &s); err != nil {
			return nil, fmt.Errorf("decoding scores: %w", err)
		}
		ref.Scores = &s
	}
	if ref.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *SQLReflectionRepo) ListDatesUpTo(ctx context.Context, userID, to string) ([]string, error) {
	query := `SELECT date_local FROM reflections
		WHERE user_id = ? AND date_local <= ?
		ORDER BY date_local`
	rows, err := r.db.QueryContext(ctx, query, userID, to)
	if err != nil {
		return nil, fmt.Errorf("listing reflection dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning reflection date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reflection dates: %w", err)
	}
	return dates, nil
}

func (r *SQLReflectionRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reflections WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting reflections: %w", err)
	}
	return n, nil
}

// SQLAddendumRepo implements AddendumRepo over db.DBTX.
type SQLAddendumRepo struct {
	db db.DBTX
}

func NewSQLAddendumRepo(conn db.DBTX) *SQLAddendumRepo {
	return &SQLAddendumRepo{db: conn}
}

func (r *SQLAddendumRepo) Create(ctx context.Context, a *domain.ReflectionAddendum) error {
	query := `INSERT INTO reflection_addenda (id, user_id, date_local, text, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.DateLocal, a.Text, formatTime(a.CreatedAt)); err != nil {
		return insertErr("reflection addendum", err)
	}
	return nil
}

func (r *SQLAddendumRepo) Get(ctx context.Context, userID, dateLocal string) (*domain.ReflectionAddendum, error) {
	query := `SELECT id, user_id, date_local, text, created_at
		FROM reflection_addenda WHERE user_id = ? AND date_local = ?`
	var a domain.ReflectionAddendum
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, userID, dateLocal).
		Scan(&a.ID, &a.UserID, &a.DateLocal, &a.Text, &createdAt)
	if err != nil {
		return nil, scanErr("reflection addendum", err)
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
