package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/auth"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) auth.UserRepository {
	return &userRepository{db: db}
}

// GetByEmail implements auth.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u auth.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByID implements auth.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u auth.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}
