package user

import (
	"errors"
	"testing"
	"time"

	"medibook/models"
)

func TestCheckAccountState(t *testing.T) {
	tests := []struct {
		status  string
		blocked bool
	}{
		{models.StatusActive, false},
		{models.StatusPending, true},
		{models.StatusRejected, true},
		{models.StatusDelete, true},
		{models.StatusSuspend, true},
		{models.StatusInactive, true},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			err := checkAccountState(&models.User{Status: tt.status})
			if tt.blocked {
				var stateErr *AccountStateError
				if !errors.As(err, &stateErr) {
					t.Fatalf("err = %v, want AccountStateError", err)
				}
				if stateErr.Status != tt.status {
					t.Errorf("Status = %q, want %q", stateErr.Status, tt.status)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterRequest{
		Name:            "Test Patient",
		Email:           "patient@example.test",
		Password:        "secret-pass",
		AppointmentTime: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		BookingFee:      50,
		PaymentMethodID: "tok_valid",
	}
	if err := validateRegister(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"blank name", func(r *RegisterRequest) { r.Name = "  " }, "name"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "abc" }, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := validateRegister(req)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := valErr.Fields[tt.field]; !ok {
				t.Errorf("Fields = %v, want entry for %q", valErr.Fields, tt.field)
			}
		})
	}

	// An empty password is allowed: the account can set one later.
	noPass := valid
	noPass.Password = ""
	if err := validateRegister(noPass); err != nil {
		t.Errorf("unexpected error for empty password: %v", err)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.StatusActive, models.StatusInactive, models.StatusSuspend,
		models.StatusDelete, models.StatusPending, models.StatusRejected,
	} {
		if !validStatus(s) {
			t.Errorf("validStatus(%q) = false, want true", s)
		}
	}
	if validStatus("Archived") {
		t.Error(`validStatus("Archived") = true, want false`)
	}
}
