package notification

import (
	"fmt"
	"html/template"
	"strings"
)

// Named e-mail templates.
const (
	TemplateForgotPassword = "forgotEmail"
	TemplateWelcome        = "welcome"
)

const bookingConfirmationTmpl = `
<div style="font-family: Arial, sans-serif; background: #f9f9f9; padding: 24px; border-radius: 8px; max-width: 500px;">
  <h1 style="color: #2a7ae2;">Your Booking is Confirmed!</h1>
  <table style="width:100%; border-collapse: collapse;">
    <tr><td style="padding: 8px 0;"><strong>Booking ID:</strong></td><td style="padding: 8px 0;">{{.BookingID}}</td></tr>
    <tr><td style="padding: 8px 0;"><strong>Name:</strong></td><td style="padding: 8px 0;">{{.Name}}</td></tr>
    <tr><td style="padding: 8px 0;"><strong>Appointment Date and Time:</strong></td><td style="padding: 8px 0;">{{.AppointmentTime}}</td></tr>
    <tr><td style="padding: 8px 0;"><strong>Payment Status:</strong></td><td style="padding: 8px 0;">{{.PaymentStatus}}</td></tr>
    {{if .MeetingLink}}<tr><td style="padding: 8px 0;" colspan="2"><strong>Meeting Link:</strong> <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></td></tr>{{end}}
  </table>
  <p style="margin-top: 24px; color: #888;">Thank you for booking your appointment. Please check your dashboard for more details.</p>
</div>`

const forgotPasswordTmpl = `
<div style="font-family: Arial, sans-serif; padding: 24px; max-width: 500px;">
  <h2>Reset Your Password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your password. The link below is valid for 10 minutes.</p>
  <p><a href="{{.ResetURL}}">Reset password</a></p>
  <p style="color: #888;">If you did not request this, you can safely ignore this e-mail.</p>
</div>`

const welcomeTmpl = `
<div style="font-family: Arial, sans-serif; padding: 24px; max-width: 500px;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account has been created. You can sign in from your dashboard at any time.</p>
</div>`

var templates = map[string]struct {
	subject string
	body    *template.Template
}{
	TemplateForgotPassword: {"Reset Your Password", template.Must(template.New(TemplateForgotPassword).Parse(forgotPasswordTmpl))},
	TemplateWelcome:        {"Welcome to MediBook", template.Must(template.New(TemplateWelcome).Parse(welcomeTmpl))},
}

var bookingConfirmation = template.Must(template.New("bookingConfirmation").Parse(bookingConfirmationTmpl))

func renderTemplate(name string, data map[string]any) (subject, body string, err error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template: %s", name)
	}
	var sb strings.Builder
	if err := t.body.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return t.subject, sb.String(), nil
}

// BookingConfirmationData fills the booking confirmation e-mail.
type BookingConfirmationData struct {
	BookingID       string
	Name            string
	AppointmentTime string
	PaymentStatus   string
	MeetingLink     string
}

// BookingConfirmationHTML renders the confirmation e-mail body.
func BookingConfirmationHTML(data BookingConfirmationData) (string, error) {
	var sb strings.Builder
	if err := bookingConfirmation.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render booking confirmation: %w", err)
	}
	return sb.String(), nil
}
