package user

import "fmt"

// ValidationError reports invalid input with per-field detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// CredentialsError reports a failed credential check. The message is
// deliberately generic.
type CredentialsError struct{}

func (e *CredentialsError) Error() string { return "invalid credentials" }

// AccountStateError reports an account whose lifecycle status forbids the
// attempted operation.
type AccountStateError struct {
	Status  string
	Message string
}

func (e *AccountStateError) Error() string { return e.Message }

// NotFoundError reports a missing user.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("user %s not found", e.ID)
	}
	return "user not found"
}
