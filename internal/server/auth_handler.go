package server

import (
	"encoding/json"
	"net/http"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users *UserService
	jwt   *JWTService
}

func NewAuthHandler(users *UserService, jwt *JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, &ErrValidation{Message: err.Error()})
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.LoginResponse{User: user, Token: token})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, &ErrValidation{Message: err.Error()})
		return
	}

	user, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.LoginResponse{User: user, Token: token})
}
