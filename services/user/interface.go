package user

import (
	"context"
	"time"

	bookingRepo "medibook/database/repository/booking"
	labtestRepo "medibook/database/repository/labtest"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/booking"
	"medibook/services/notification"

	"go.uber.org/zap"
)

// TokenTTL is the lifetime of issued auth tokens.
const TokenTTL = 24 * time.Hour

// RegisterRequest combines account creation with the initial consulting
// booking: registration is only completed once the booking transaction
// succeeds.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Contact  string

	AppointmentTime time.Time
	Reason          string
	BookingFee      float64
	PaymentMethodID string
}

// AuthResponse carries the signed token and the sanitized user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"data"`

	// Booking is set on register, which books the first consultation as part
	// of the same transaction.
	Booking *models.BookingResponse `json:"booking,omitempty"`
}

// UserService covers authentication, profile and admin user management.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)

	ForgotPassword(email, origin string) error
	ResetPassword(token, newPassword string) (*AuthResponse, error)
	UpdatePassword(userID, oldPassword, newPassword string) error
	CreateFirstPassword(userID, password string) error

	GetUser(id string) (*models.User, error)
	ListUsers(filter userRepo.ListFilter) ([]models.User, models.PageInfo, error)
	UpdateProfile(req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(id string) error
	UpdateStatus(id, status string) (*models.User, error)

	DashboardStats() (*models.DashboardStats, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Bookings booking.BookingService
	Mailer   notification.EmailSender

	// Read-only repos backing the admin dashboard aggregates.
	BookingRepo bookingRepo.BookingRepository
	TestRepo    labtestRepo.LabTestRepository

	Logger *zap.Logger
}
