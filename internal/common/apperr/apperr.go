// Package apperr defines the application error taxonomy shared by all
// domain services. Handlers translate these into HTTP statuses at the
// request boundary; services only wrap and return them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated covers missing sessions and failed logins.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden covers insufficient role and cross-tenant access.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the referenced vehicle/rental/user does not exist
	// within the caller's tenant.
	ErrNotFound = errors.New("not found")
	// ErrValidation means a required field is missing or a value cannot
	// be coerced to its expected type.
	ErrValidation = errors.New("validation failed")
	// ErrConstraint means a uniqueness constraint was violated
	// (duplicate plate, tax id or login).
	ErrConstraint = errors.New("constraint violation")
	// ErrAlreadyRented means the vehicle already has an active rental.
	ErrAlreadyRented = errors.New("vehicle already rented")
	// ErrVehicleInUse means the vehicle cannot be deleted while an
	// active rental references it.
	ErrVehicleInUse = errors.New("vehicle in use")
	// ErrSchemaMismatch means an import file is missing required columns.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Validationf wraps ErrValidation with a field-level detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Forbiddenf wraps ErrForbidden with a detail message.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error chain to the status code reported to clients.
// Unknown errors map to 500 and are not detailed in the response body.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConstraint),
		errors.Is(err, ErrAlreadyRented),
		errors.Is(err, ErrVehicleInUse):
		return http.StatusConflict
	case errors.Is(err, ErrSchemaMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
