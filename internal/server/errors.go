package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/hireflux/ats-service/internal/ats"
	"github.com/hireflux/ats-service/internal/db"
)

// Auth failures that carry no payload are plain sentinels.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login responses never reveal which half failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordMismatch is returned when the current password sent with
	// a password change does not match the stored hash.
	ErrPasswordMismatch = errors.New("current password is incorrect")
)

// ErrEmailAlreadyExists reports a registration attempt with a taken email.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrUserNotFound reports an operation against a user ID with no row behind it.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrValidation reports a request field that failed validation.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden reports an authenticated user acting outside their role.
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

// HTTPStatus maps service and storage errors onto response status codes.
// Anything unrecognized, including nil, maps to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrPasswordMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, db.ErrDuplicateApplication),
		errors.Is(err, db.ErrDuplicateEmail),
		errors.Is(err, db.ErrStatusConflict):
		return http.StatusConflict
	}

	var (
		emailTaken   *ErrEmailAlreadyExists
		userNotFound *ErrUserNotFound
		validation   *ErrValidation
		forbidden    *ErrForbidden
		notFound     *ats.NotFoundError
		transition   *ats.InvalidTransitionError
		jobNotOpen   *ats.JobNotOpenError
		profile      *ats.ProfileRequiredError
	)
	switch {
	case errors.As(err, &emailTaken), errors.As(err, &jobNotOpen):
		return http.StatusConflict
	case errors.As(err, &userNotFound), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &transition), errors.As(err, &profile):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
