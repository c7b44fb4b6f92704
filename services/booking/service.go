package booking

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/meeting"
	"medibook/services/notification"
	"medibook/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateCreateBooking(req CreateBookingRequest) error {
	fields := map[string]string{}
	if req.Patient == nil || req.Patient.ID == "" {
		fields["patient"] = "requesting user is required"
	}
	if req.AppointmentTime.IsZero() {
		fields["appointmentDateandTime"] = "appointment date and time is required"
	}
	if req.BookingFee <= 0 {
		fields["bookingfee"] = "booking fee must be greater than zero"
	}
	if req.PaymentMethodID == "" {
		fields["paymentMethodid"] = "payment method is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateBooking runs the booking transaction: conflict check, slot lock,
// payment authorization and capture, meeting provisioning, persistence, and
// a best-effort confirmation e-mail. Every failure after authorization
// cancels the hold before the error is surfaced.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.BookingResponse, error) {
	if err := validateCreateBooking(req); err != nil {
		return nil, err
	}

	// Pre-flight conflict check. Nothing has been charged yet, so a conflict
	// aborts without compensation.
	conflict, err := s.Conflicts.HasConflict(req.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking conflicts: %w", err)
	}
	if conflict {
		return nil, &ConflictError{}
	}

	// Hold the slot for the whole transaction so a concurrent request for the
	// same window cannot also pass the check above.
	release, acquired, err := s.Locks.Acquire(ctx, req.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("failed to lock booking slot: %w", err)
	}
	if !acquired {
		return nil, &ConflictError{Message: "another booking for this slot is being processed"}
	}
	defer release()

	amount := payment.MinorUnits(req.BookingFee)
	intent, err := s.Gateway.Authorize(ctx, amount, Currency, req.PaymentMethodID)
	if err != nil {
		s.Logger.Warn("booking authorization failed", zap.Error(err))
		return nil, &payment.AuthorizationFailedError{}
	}
	if intent.Status != models.IntentStatusRequiresCapture {
		return nil, &payment.AuthorizationFailedError{Status: intent.Status}
	}

	// Past this point a hold exists; every exit other than success must
	// cancel it.
	var booking *models.Booking
	err = payment.WithCompensation(ctx, s.Gateway, s.Logger, intent.ID, func() error {
		captured, err := s.Gateway.Capture(ctx, intent.ID)
		if err != nil {
			return &payment.CaptureFailedError{Err: err}
		}
		if captured.Status != models.IntentStatusSucceeded {
			return &payment.CaptureFailedError{Status: captured.Status}
		}

		m, err := s.Meetings.CreateMeeting(ctx, req.AppointmentTime)
		if err != nil {
			return &meeting.ProvisioningFailedError{Err: err}
		}

		booking = &models.Booking{
			ID:              uuid.New().String(),
			PatientID:       req.Patient.ID,
			AppointmentTime: req.AppointmentTime,
			Reason:          req.Reason,
			PaymentStatus:   models.PaymentStatusPaid,
			BookingFee:      req.BookingFee,
			MeetingLink:     m.JoinURL,
			CreatedAt:       time.Now(),
		}
		if err := s.Repo.Create(booking); err != nil {
			return fmt.Errorf("failed to persist booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort only: the booking stands even if the e-mail never sends.
	s.sendConfirmation(booking, req.Patient)

	return &models.BookingResponse{
		Booking:      booking,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// sendConfirmation e-mails the patient, and the configured admin recipient
// when one is set. The original product addressed its "admin" notification to
// the patient's own address; kept pending product clarification, with the
// admin copy as the configurable correction.
func (s *DefaultBookingService) sendConfirmation(booking *models.Booking, patient *models.User) {
	body, err := notification.BookingConfirmationHTML(notification.BookingConfirmationData{
		BookingID:       booking.ID,
		Name:            patient.Name,
		AppointmentTime: booking.AppointmentTime.Format("Mon, 02 Jan 2006 15:04"),
		PaymentStatus:   booking.PaymentStatus,
		MeetingLink:     booking.MeetingLink,
	})
	if err != nil {
		s.Logger.Warn("booking confirmation not sent", zap.String("booking_id", booking.ID), zap.Error(err))
		return
	}

	recipients := []string{patient.Email}
	if s.AdminEmail != "" {
		recipients = append(recipients, s.AdminEmail)
	}
	for _, to := range recipients {
		if err := s.Mailer.SendHTML(to, "New Booking Created", body); err != nil {
			s.Logger.Warn("booking confirmation not sent",
				zap.String("booking_id", booking.ID),
				zap.String("recipient", to),
				zap.Error(err))
		}
	}
}
