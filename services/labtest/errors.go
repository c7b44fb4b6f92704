package labtest

import "fmt"

// ValidationError reports structurally invalid test-order input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid test data: %v", e.Fields)
}

// NotFoundError reports a missing lab test.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lab test %s not found", e.ID)
}
