package booking

import "fmt"

// ValidationError reports structurally invalid booking input, with per-field
// detail where available.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking data: %v", e.Fields)
}

// ConflictError reports a requested slot already taken. Detected before any
// payment side effect.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "booking already exists during your selected date and time"
}

// NotFoundError reports a missing booking.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.ID)
}
