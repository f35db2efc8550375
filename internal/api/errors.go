package api

import (
	"errors"
	"net/http"

	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/grading"
	"github.com/rillka/wordbank-api/internal/service/auth"
	"github.com/rillka/wordbank-api/internal/service/practice"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/service/session"
	"github.com/rillka/wordbank-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, review.ErrWordNotOwned),
		errors.Is(err, review.ErrWordNotVisible),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, practice.ErrProfileNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Contract violations, rejected before any read or write
	case errors.Is(err, practice.ErrUnknownMode),
		errors.Is(err, session.ErrUnknownMode),
		errors.Is(err, session.ErrUnknownTag),
		errors.Is(err, session.ErrInvalidLimit),
		errors.Is(err, grading.ErrEmptySubmission),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidTier):
		return http.StatusBadRequest

	// Upstream grader failures
	case errors.Is(err, grading.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, grading.ErrTransientFailure),
		errors.Is(err, grading.ErrInvalidResponse):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, review.ErrWordNotOwned):
		return "You do not own this word"

	case errors.Is(err, review.ErrWordNotVisible):
		return "Word is not available to you"

	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTagNotFound):
		return "Tag not found"

	case errors.Is(err, practice.ErrProfileNotFound),
		errors.Is(err, store.ErrProfileNotFound):
		return "Learner profile not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, practice.ErrUnknownMode),
		errors.Is(err, session.ErrUnknownMode):
		return "Unknown practice mode"

	case errors.Is(err, session.ErrUnknownTag):
		return "Unknown tag"

	case errors.Is(err, session.ErrInvalidLimit):
		return "Session limit must be positive"

	case errors.Is(err, grading.ErrEmptySubmission):
		return "Nothing to grade"

	case errors.Is(err, grading.ErrContentBlocked):
		return "Submission was rejected by the grader"

	case errors.Is(err, grading.ErrTransientFailure),
		errors.Is(err, grading.ErrInvalidResponse):
		return "Grading is temporarily unavailable"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid data"

	default:
		return "An unexpected error occurred"
	}
}
