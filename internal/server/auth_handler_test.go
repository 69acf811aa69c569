package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kedhareswer/interviewai-navigator/internal/config"
	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

type memUserStore struct {
	byEmail map[string]*db.UserRecord
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*db.UserRecord)}
}

func (s *memUserStore) CreateUser(_ context.Context, name, email, passwordHash string, role types.Role) (*types.User, error) {
	user := &types.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.byEmail[email] = &db.UserRecord{User: *user, PasswordHash: passwordHash}
	return user, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*db.UserRecord, error) {
	rec, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, db.ErrNotFound)
	}
	return rec, nil
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *memUserStore) {
	t.Helper()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	store := newMemUserStore()
	users := NewUserService(store, passwordConfig)
	jwtService := testJWTService("test-secret-at-least-32-characters-long")
	return NewAuthHandler(users, jwtService), store
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	handler, store := newTestAuthHandler(t)

	rec := postJSON(t, handler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
		Role:     "hr",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "dana@example.com", resp.User.Email)
	assert.Equal(t, types.RoleHR, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	// Password is stored hashed, never plaintext.
	saved := store.byEmail["dana@example.com"]
	assert.NotEqual(t, "hunter2hunter2", saved.PasswordHash)
}

func TestRegister_DefaultsToCandidateRole(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	rec := postJSON(t, handler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, types.RoleCandidate, resp.User.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler, _ := newTestAuthHandler(t)
	req := types.CreateUserRequest{Name: "Dana", Email: "dana@example.com", Password: "hunter2hunter2"}

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", req).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, handler.Register, "/auth/register", req).Code)
}

func TestRegister_RejectsInvalidRequests(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	tests := []struct {
		name string
		req  types.CreateUserRequest
	}{
		{"missing name", types.CreateUserRequest{Email: "a@b.com", Password: "hunter2hunter2"}},
		{"bad email", types.CreateUserRequest{Name: "X", Email: "not-an-email", Password: "hunter2hunter2"}},
		{"short password", types.CreateUserRequest{Name: "X", Email: "a@b.com", Password: "short"}},
		{"unknown role", types.CreateUserRequest{Name: "X", Email: "a@b.com", Password: "hunter2hunter2", Role: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, postJSON(t, handler.Register, "/auth/register", tt.req).Code)
		})
	}
}

func TestLogin(t *testing.T) {
	handler, _ := newTestAuthHandler(t)
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	}).Code)

	rec := postJSON(t, handler.Login, "/auth/login", types.LoginRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "dana@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	handler, _ := newTestAuthHandler(t)
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	}).Code)

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, handler.Login, "/auth/login", types.LoginRequest{
			Email:    "dana@example.com",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		rec := postJSON(t, handler.Login, "/auth/login", types.LoginRequest{
			Email:    "nobody@example.com",
			Password: "hunter2hunter2",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})
}

func TestLogin_MalformedBody(t *testing.T) {
	handler, _ := newTestAuthHandler(t)
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
