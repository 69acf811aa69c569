// Package server provides the HTTP REST API for the interview orchestrator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/orchestration"
	"github.com/Kedhareswer/interviewai-navigator/internal/planning"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Model failures surface as gateway errors: the request was fine, the
// upstream generation was not.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var validationErr *schemas.ValidationError
	var generationErr *llm.GenerationError

	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, orchestration.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, planning.ErrJobNotNormalized):
		return http.StatusUnprocessableEntity
	case errors.Is(err, planning.ErrInvalidDecision):
		return http.StatusBadGateway
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &generationErr):
		return http.StatusBadGateway
	case errors.As(err, &validationErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
