package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kedhareswer/interviewai-navigator/internal/config"
	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// UserStore is the persistence surface the user service needs. *db.DB
// implements it.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string, role types.Role) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.UserRecord, error)
}

// UserService provides business logic for user authentication operations
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication. New users
// default to the candidate role; HR accounts are provisioned explicitly.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := types.Role(req.Role)
	if role == "" {
		role = types.RoleCandidate
	}

	user, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns the stored profile.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	rec, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Generic error whether the user is missing or the password is
		// wrong, so login cannot be used to probe for accounts.
		if errors.Is(err, db.ErrNotFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := s.passwordConfig.VerifyPassword(rec.PasswordHash, req.Password); err != nil {
		return nil, &ErrInvalidCredentials{}
	}

	user := rec.User
	return &user, nil
}
