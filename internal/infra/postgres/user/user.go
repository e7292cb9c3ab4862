package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filmnest/core/internal/model"
	usecase_account "github.com/filmnest/core/internal/usecase/account"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type userDB struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *userDB) toDomain() model.User {
	return model.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *Repository) Insert(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return usecase_account.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) LoadByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var row userDB
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, usecase_account.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user by email: %w", err)
	}

	return row.toDomain(), nil
}

func (r *Repository) LoadByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	var row userDB
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, usecase_account.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user by id: %w", err)
	}

	return row.toDomain(), nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return usecase_account.ErrUserNotFound
	}

	return nil
}

func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return usecase_account.ErrUserNotFound
	}

	return nil
}
