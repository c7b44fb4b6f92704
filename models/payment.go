package models

// Payment intent statuses reported by the gateway. Anything outside this
// vocabulary is a failure.
const (
	IntentStatusRequiresCapture = "requires_capture"
	IntentStatusSucceeded       = "succeeded"
)

// PaymentIntent represents a gateway-side authorization hold progressing to
// capture or cancellation.
type PaymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"clientSecret"`
}

// CaptureResult is the outcome of finalizing a hold into a charge.
type CaptureResult struct {
	Status string `json:"status"`
}

// Meeting is a provisioned video meeting for a consulting booking.
type Meeting struct {
	ID        int64  `json:"id"`
	JoinURL   string `json:"join_url"`
	StartTime string `json:"start_time"`
	Topic     string `json:"topic"`
}
