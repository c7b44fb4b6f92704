package notification

import (
	"strings"
	"testing"
)

func TestBookingConfirmationHTML(t *testing.T) {
	body, err := BookingConfirmationHTML(BookingConfirmationData{
		BookingID:       "bk-1",
		Name:            "Test Patient",
		AppointmentTime: "Tue, 15 Sep 2026 10:00",
		PaymentStatus:   "paid",
		MeetingLink:     "https://zoom.us/j/42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"bk-1", "Test Patient", "paid", "https://zoom.us/j/42"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBookingConfirmationHTMLOmitsEmptyMeetingLink(t *testing.T) {
	body, err := BookingConfirmationHTML(BookingConfirmationData{
		BookingID:     "bk-2",
		Name:          "Test Patient",
		PaymentStatus: "paid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(body, "Meeting Link") {
		t.Error("body contains a meeting link row for an empty link")
	}
}

func TestRenderTemplate(t *testing.T) {
	subject, body, err := renderTemplate(TemplateForgotPassword, map[string]any{
		"Name":     "Test Patient",
		"ResetURL": "https://app.test/reset-password?token=abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "Reset Your Password" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "https://app.test/reset-password?token=abc") {
		t.Error("body missing reset link")
	}
}

func TestRenderTemplateUnknownName(t *testing.T) {
	if _, _, err := renderTemplate("nope", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}
