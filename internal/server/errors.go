// Package server provides the HTTP REST API for the study-plan service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/marcus/studyplan/internal/plan"
	"github.com/marcus/studyplan/internal/storage"
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

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPlanNotFound indicates the plan does not exist or is owned by another user
type ErrPlanNotFound struct {
	PlanID uuid.UUID
}

func (e *ErrPlanNotFound) Error() string {
	return fmt.Sprintf("plan not found: %s", e.PlanID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrPlanNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var planErr *plan.ValidationError
	if errors.As(err, &planErr) {
		return http.StatusBadRequest
	}
	var badName *storage.ErrInvalidFilename
	if errors.As(err, &badName) {
		return http.StatusBadRequest
	}
	var missing *storage.ErrFileNotFound
	if errors.As(err, &missing) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
