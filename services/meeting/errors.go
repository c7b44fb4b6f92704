package meeting

import "fmt"

// ProvisioningFailedError reports that a meeting could not be created.
// In the booking transaction this is fatal: a paid booking is never
// surfaced without a join link.
type ProvisioningFailedError struct {
	Err error
}

func (e *ProvisioningFailedError) Error() string {
	return fmt.Sprintf("meeting provisioning failed: %v", e.Err)
}

func (e *ProvisioningFailedError) Unwrap() error { return e.Err }
