package booking

import (
	"fmt"
	"time"

	"medibook/models"
)

// GetBooking retrieves a booking joined with its patient.
func (s *DefaultBookingService) GetBooking(id string) (*models.BookingWithPatient, error) {
	booking, err := s.Repo.GetByIDWithPatient(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, &NotFoundError{ID: id}
	}
	return booking, nil
}

// ListPatientBookings returns a page of one patient's bookings.
func (s *DefaultBookingService) ListPatientBookings(patientID string, page, limit int) ([]models.Booking, models.PageInfo, error) {
	page, limit = normalizePage(page, limit)
	bookings, total, err := s.Repo.ListByPatient(patientID, page, limit)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	return bookings, models.NewPageInfo(len(bookings), total, page, limit), nil
}

// ListAllBookings returns a page of all bookings with their patients joined.
func (s *DefaultBookingService) ListAllBookings(page, limit int) ([]models.BookingWithPatient, models.PageInfo, error) {
	page, limit = normalizePage(page, limit)
	bookings, total, err := s.Repo.ListAllWithPatients(page, limit)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	return bookings, models.NewPageInfo(len(bookings), total, page, limit), nil
}

// CalendarBookings returns appointment instants for the month containing
// monthOf.
func (s *DefaultBookingService) CalendarBookings(monthOf time.Time) ([]time.Time, error) {
	year, month, _ := monthOf.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, monthOf.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.Repo.AppointmentsInRange(first, last)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
