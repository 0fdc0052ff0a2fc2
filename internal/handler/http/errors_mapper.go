package http

import (
	"errors"
	"net/http"

	"github.com/authgate/authgate/internal/service"
	"github.com/authgate/authgate/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidationMissingFields: http.StatusBadRequest,
	service.ErrValidationEmailFormat:   http.StatusBadRequest,
	service.ErrValidationEmailMismatch: http.StatusBadRequest,
	service.ErrValidationWeakPassword:  http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrWrongOTPCode:            http.StatusUnauthorized,
	service.ErrAccountDisabled:         http.StatusForbidden,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

// Client-facing messages for the mapped errors. Login-stage and token-stage
// failures deliberately share one message each so that responses never leak
// which check failed.
var errorMessageMap = map[error]string{
	service.ErrValidationMissingFields: "All fields are required",
	service.ErrValidationEmailFormat:   "Invalid email format",
	service.ErrValidationEmailMismatch: "Emails do not match",
	service.ErrValidationWeakPassword:  "Password must be at least 8 characters and include uppercase, lowercase, number, and special character",
	service.ErrInvalidCredentials:      "Invalid email or password",
	service.ErrTokenIsExpiredOrInvalid: "Invalid or expired token",
	service.ErrWrongOTPCode:            "Invalid code",
	service.ErrAccountDisabled:         "Account disabled",

	store.ErrEmailAlreadyExists: "Email already exists",
	store.ErrNoUserWasFound:     "User not found",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return "Server error"
}
