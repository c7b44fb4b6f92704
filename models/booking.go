package models

import "time"

// Payment statuses shared by bookings and lab tests.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Booking represents a paid consulting appointment. A booking is created
// exactly once, after payment capture and meeting provisioning, and is never
// deleted.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	PatientID       string    `bson:"patient_id" json:"patientId"`
	AppointmentTime time.Time `bson:"appointment_time" json:"appointmentDateandTime"`
	Reason          string    `bson:"reason,omitempty" json:"reason,omitempty"`
	PaymentStatus   string    `bson:"payment_status" json:"paymentStatus"`
	BookingFee      float64   `bson:"booking_fee" json:"bookingfee"`
	MeetingLink     string    `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// BookingWithPatient is a booking joined with its owning patient.
type BookingWithPatient struct {
	Booking `bson:",inline"`
	Patient *User `bson:"patient,omitempty" json:"patient,omitempty"`
}

// BookingResponse is returned to the client after a successful booking
// transaction. ClientSecret allows any client-side confirmation step the
// payment gateway still requires.
type BookingResponse struct {
	Booking      *Booking `json:"booking"`
	ClientSecret string   `json:"clientSecret"`
}
