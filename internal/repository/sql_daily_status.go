package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLDailyStatusRepo implements DailyStatusRepo over db.DBTX.
type SQLDailyStatusRepo struct {
	db db.DBTX
}

func NewSQLDailyStatusRepo(conn db.DBTX) *SQLDailyStatusRepo {
	return &SQLDailyStatusRepo{db: conn}
}

func (r *SQLDailyStatusRepo) Create(ctx context.Context, s *domain.DailyStatus) error {
	query := `INSERT INTO daily_status (id, user_id, date_local, prompt_id, prompt_text,
		has_reflection, has_mood, did_swap_prompt, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.DateLocal,
		s.Prompt.PromptID,
		s.Prompt.PromptText,
		boolToInt(s.HasReflection),
		boolToInt(s.HasMood),
		boolToInt(s.DidSwapPrompt),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return insertErr("daily status", err)
	}
	return nil
}

func (r *SQLDailyStatusRepo) Get(ctx context.Context, userID, dateLocal string) (*domain.DailyStatus, error) {
	query := `SELECT id, user_id, date_local, prompt_id, prompt_text,
		has_reflection, has_mood, did_swap_prompt, created_at, updated_at
		FROM daily_status WHERE user_id = ? AND date_local = ?`
	row := r.db.QueryRowContext(ctx, query, userID, dateLocal)

	var s domain.DailyStatus
	var reflected, mood, swapped int
	var createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.UserID, &s.DateLocal, &s.Prompt.PromptID, &s.Prompt.PromptText,
		&reflected, &mood, &swapped, &createdAt, &updatedAt)
	if err != nil {
		return nil, scanErr("daily status", err)
	}

	s.HasReflection = intToBool(reflected)
	s.HasMood = intToBool(mood)
	s.DidSwapPrompt = intToBool(swapped)
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLDailyStatusRepo) SwapPrompt(ctx context.Context, userID, dateLocal string, p domain.PromptSnapshot, at time.Time) (bool, error) {
	query := `UPDATE daily_status
		SET prompt_id = ?, prompt_text = ?, did_swap_prompt = 1, updated_at = ?
		WHERE user_id = ? AND date_local = ? AND did_swap_prompt = 0 AND has_reflection = 0`
	res, err := r.db.ExecContext(ctx, query, p.PromptID, p.PromptText, formatTime(at), userID, dateLocal)
	if err != nil {
		return false, fmt.Errorf("swapping prompt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking swapped prompt: %w", err)
	}
	return n == 1, nil
}

func (r *SQLDailyStatusRepo) MarkReflected(ctx context.Context, userID, dateLocal, promptID string, at time.Time) (bool, error) {
	query := `UPDATE daily_status SET has_reflection = 1, updated_at = ?
		WHERE user_id = ? AND date_local = ? AND prompt_id = ? AND has_reflection = 0`
	res, err := r.db.ExecContext(ctx, query, formatTime(at), userID, dateLocal, promptID)
	if err != nil {
		return false, fmt.Errorf("setting has_reflection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking has_reflection: %w", err)
	}
	return n == 1, nil
}

func (r *SQLDailyStatusRepo) MarkMood(ctx context.Context, userID, dateLocal string, at time.Time) error {
	return r.setFlag(ctx, "has_mood", userID, dateLocal, at)
}

// setFlag sets one of the fixed boolean columns; column is never user input.
func (r *SQLDailyStatusRepo) setFlag(ctx context.Context, column, userID, dateLocal string, at time.Time) error {
	query := `UPDATE daily_status SET ` + column + ` = 1, updated_at = ? WHERE user_id = ? AND date_local = ?`
	res, err := r.db.ExecContext(ctx, query, formatTime(at), userID, dateLocal)
	if err != nil {
		return fmt.Errorf("setting %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("daily status %s/%s: %w", userID, dateLocal, ErrNotFound)
	}
	return nil
}
