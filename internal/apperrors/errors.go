package apperrors

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes; wrap with fmt.Errorf("...: %w", err) to add context.
var (
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidDateRange indicates a rental or reservation date range that is
	// in the past or has end before start.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrVehicleUnavailable indicates the vehicle cannot be rented for the
	// requested dates.
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidAmount indicates a non-positive fine amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidState indicates a lifecycle transition not allowed from the
	// entity's current status.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidInput indicates malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized indicates the principal lacks the required capability.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicate indicates a uniqueness violation (plate, DNI, username).
	ErrDuplicate = errors.New("already exists")
)
