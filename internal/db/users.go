package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// UserRecord is a stored user including the password hash. The hash never
// leaves this package boundary except to the auth service.
type UserRecord struct {
	User         types.User
	PasswordHash string
}

// CreateUser inserts a user with a pre-hashed password.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string, role types.Role) (*types.User, error) {
	user := types.User{ID: uuid.New(), Name: name, Email: email, Role: role}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		user.ID, name, email, passwordHash, role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user record, including the password hash,
// for credential verification.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var rec UserRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&rec.User.ID, &rec.User.Name, &rec.User.Email, &rec.PasswordHash, &rec.User.Role, &rec.User.CreatedAt, &rec.User.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &rec, nil
}

// GetUser retrieves a user profile by ID.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
