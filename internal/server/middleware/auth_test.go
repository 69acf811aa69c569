package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	userID uuid.UUID
	role   string
}

func (c stubClaims) GetUserID() uuid.UUID { return c.userID }
func (c stubClaims) GetRole() string      { return c.role }

type stubValidator struct {
	token  string
	claims stubClaims
}

func (v stubValidator) ValidateToken(tokenString string) (ClaimsGetter, error) {
	if tokenString != v.token {
		return nil, errors.New("invalid token")
	}
	return v.claims, nil
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := stubValidator{token: "good-token", claims: stubClaims{userID: userID, role: "hr"}}

	var gotUserID uuid.UUID
	var gotRole string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotUserID, err = GetUserID(r)
		require.NoError(t, err)
		gotRole, err = GetRole(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"missing token", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized},
		{"valid token", "Bearer good-token", http.StatusOK},
		{"lowercase scheme", "bearer good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "hr", gotRole)
}

func TestRequireRole(t *testing.T) {
	validator := stubValidator{token: "hr-token", claims: stubClaims{userID: uuid.New(), role: "hr"}}
	candidateValidator := stubValidator{token: "cand-token", claims: stubClaims{userID: uuid.New(), role: "candidate"}}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("matching role passes", func(t *testing.T) {
		handler := AuthMiddleware(validator)(RequireRole("hr")(ok))
		req := httptest.NewRequest("POST", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer hr-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		handler := AuthMiddleware(candidateValidator)(RequireRole("hr")(ok))
		req := httptest.NewRequest("POST", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer cand-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated request is forbidden", func(t *testing.T) {
		handler := RequireRole("hr")(ok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/jobs", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestGetUserID_MissingContext(t *testing.T) {
	_, err := GetUserID(httptest.NewRequest("GET", "/", nil))
	assert.Error(t, err)
}
