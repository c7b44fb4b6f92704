package payment

import "fmt"

// AuthorizationFailedError reports that the gateway declined the
// authorization hold. No compensation is needed: nothing was captured.
type AuthorizationFailedError struct {
	Status string
}

func (e *AuthorizationFailedError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("card authorization failed: status %s", e.Status)
	}
	return "card authorization failed"
}

// CaptureFailedError reports that an authorization hold could not be
// finalized into a charge.
type CaptureFailedError struct {
	Status string
	Err    error
}

func (e *CaptureFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment capture failed: %v", e.Err)
	}
	return fmt.Sprintf("payment capture failed: status %s", e.Status)
}

func (e *CaptureFailedError) Unwrap() error { return e.Err }
