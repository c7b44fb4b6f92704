package notification

// EmailSender dispatches e-mail. From the orchestrator's point of view
// notification is fire-and-forget: failures are observed in logs, never
// surfaced to the booking caller.
type EmailSender interface {
	SendHTML(recipient, subject, htmlBody string) error
	SendTemplate(recipient, templateName string, data map[string]any) error
	SendText(recipient, subject, text string) error
}
