package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/bluum/internal/db"
	"github.com/alexanderramin/bluum/internal/domain"
)

// SQLUserRepo implements UserRepo over db.DBTX.
type SQLUserRepo struct {
	db db.DBTX
}

func NewSQLUserRepo(conn db.DBTX) *SQLUserRepo {
	return &SQLUserRepo{db: conn}
}

const userColumns = `id, external_id, display_name, timezone, reflection_reminder_enabled,
	reflection_reminder_time_local, onboarding_completed_at, created_at, updated_at`

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLUserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = ?`, externalID)
	return scanUser(row)
}

func (r *SQLUserRepo) CreateIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (external_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.ExternalID,
		u.DisplayName,
		u.Timezone,
		boolToInt(u.ReflectionReminderEnabled),
		u.ReflectionReminderTimeLocal,
		nullableTimeToString(u.OnboardingCompletedAt),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("inserting user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking inserted user: %w", err)
	}
	return n == 1, nil
}

func (r *SQLUserRepo) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET display_name = ?, timezone = ?, reflection_reminder_enabled = ?,
		reflection_reminder_time_local = ?, onboarding_completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.DisplayName,
		u.Timezone,
		boolToInt(u.ReflectionReminderEnabled),
		u.ReflectionReminderTimeLocal,
		nullableTimeToString(u.OnboardingCompletedAt),
		formatTime(u.UpdatedAt),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var reminder int
	var onboarded sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.ExternalID, &u.DisplayName, &u.Timezone, &reminder,
		&u.ReflectionReminderTimeLocal, &onboarded, &createdAt, &updatedAt)
	if err != nil {
		return nil, scanErr("user", err)
	}

	u.ReflectionReminderEnabled = intToBool(reminder)
	u.OnboardingCompletedAt = parseNullableTime(onboarded)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
