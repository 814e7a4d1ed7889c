package api

import (
	"database/sql"
	"errors"
	"net/http"

	"user-management/internal/domain/user"
	"user-management/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

// Validation failures keep the upstream message strings but travel as
// structured JSON with real status codes instead of 200 plain text.
func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, user.ErrMissingCredentials):
		return apperr.BadRequest("missing_credentials", "Email and password are required", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "Invalid credentials", err)
	case errors.Is(err, user.ErrInactiveAccount):
		return apperr.Forbidden("inactive_account", "Account is inactive", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.Conflict("email_taken", "Email already exists", err)
	case errors.Is(err, user.ErrNameTooLong):
		return apperr.BadRequest("name_too_long", "Name too long", err)
	case errors.Is(err, user.ErrInvalidContact):
		return apperr.BadRequest("invalid_contact", "Contact number must be exactly 10 digits", err)
	case errors.Is(err, user.ErrInvalidEmail):
		return apperr.BadRequest("invalid_email", "Email must be a valid @gmail.com address", err)
	case errors.Is(err, user.ErrWeakPassword):
		return apperr.BadRequest("weak_password", "Password must be 8-12 chars with upper, lower, number & special (# $ & @)", err)
	case errors.Is(err, user.ErrInvalidImage):
		return apperr.BadRequest("invalid_image", "Profile image must be an image data URI of at most 2MB", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
