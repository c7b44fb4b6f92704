package booking

import (
	"context"
	"time"

	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
	"medibook/services/meeting"
	"medibook/services/notification"
	"medibook/services/payment"

	"go.uber.org/zap"
)

// Currency is the single currency this system charges in.
const Currency = "usd"

// CreateBookingRequest is the validated input of one booking transaction.
// Patient is the authenticated requesting user; it stamps the booking and
// addresses the confirmation e-mail.
type CreateBookingRequest struct {
	Patient         *models.User
	AppointmentTime time.Time
	Reason          string
	BookingFee      float64
	PaymentMethodID string
}

// BookingService creates and queries consulting bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.BookingResponse, error)
	GetBooking(id string) (*models.BookingWithPatient, error)
	ListPatientBookings(patientID string, page, limit int) ([]models.Booking, models.PageInfo, error)
	ListAllBookings(page, limit int) ([]models.BookingWithPatient, models.PageInfo, error)

	// CalendarBookings returns the appointment instants of the month
	// containing the given date.
	CalendarBookings(monthOf time.Time) ([]time.Time, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Conflicts ConflictChecker
	Locks     SlotLocker
	Gateway   payment.Gateway
	Meetings  meeting.Provisioner
	Mailer    notification.EmailSender

	// AdminEmail, when non-empty, receives a copy of every booking
	// confirmation. The patient is always the primary recipient.
	AdminEmail string

	Logger *zap.Logger
}
