package utils

import "errors"

// AppError is an error the caller caused. Code is the stable API error code,
// Message the human readable reason.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

func newAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Validation errors.
var (
	ErrInvalidName        = newAppError("INVALID_NAME", "name is required")
	ErrInvalidPrice       = newAppError("INVALID_PRICE", "price must be positive")
	ErrInvalidCategory    = newAppError("INVALID_CATEGORY", "category must be one of appetizer, main_course, dessert, beverage")
	ErrInvalidStatus      = newAppError("INVALID_STATUS", "status must be available or unavailable")
	ErrInvalidOrder       = newAppError("INVALID_ORDER", "display order must be >= 0")
	ErrInvalidDescription = newAppError("INVALID_DESCRIPTION", "description is required")
	ErrInvalidDays        = newAppError("INVALID_DAYS", "active days must be a non-empty list of weekdays 1 (Monday) to 7 (Sunday)")
	ErrInvalidTimeFormat  = newAppError("INVALID_TIME_FORMAT", "time must use the HH:mm 24h format")
	ErrInvalidTimeStep    = newAppError("INVALID_TIME_STEP", "minutes must be 00, 15, 30 or 45")
	ErrInvalidInterval    = newAppError("INVALID_INTERVAL", "start and end time must differ")
	ErrInvalidTimezone    = newAppError("INVALID_TIMEZONE", "unknown timezone")
	ErrMissingID          = newAppError("MISSING_ID", "a positive id is required")
	ErrEmptyPatch         = newAppError("EMPTY_PATCH", "no fields to update")
	ErrLinkedProduct      = newAppError("LINKED_PRODUCT_NOT_FOUND", "a linked product does not exist")
	ErrInvalidRequest     = newAppError("INVALID_REQUEST", "invalid request body")
)

// ErrNotFound reports that the addressed record does not exist.
var ErrNotFound = errors.New("NOT_FOUND")

// AsAppError extracts the AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
