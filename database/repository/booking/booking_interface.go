package bookingRepo

import (
	"time"

	"medibook/models"
)

// BookingRepository defines persistence for consulting bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByIDWithPatient(id string) (*models.BookingWithPatient, error)

	// ExistsInWindow reports whether any booking's appointment instant falls
	// inside [at-window, at], both ends inclusive.
	ExistsInWindow(at time.Time, window time.Duration) (bool, error)

	ListByPatient(patientID string, page, limit int) ([]models.Booking, int64, error)
	ListAllWithPatients(page, limit int) ([]models.BookingWithPatient, int64, error)

	// AppointmentsInRange returns the appointment instants between from and to,
	// inclusive, for the calendar view.
	AppointmentsInRange(from, to time.Time) ([]time.Time, error)

	// Stats returns the booking count and the summed fees of paid bookings.
	Stats() (int64, float64, error)
}
