package user

import (
	"context"
	"strings"
	"time"

	"medibook/models"
	"medibook/services/booking"
	"medibook/services/notification"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func validateRegister(req RegisterRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if req.Password != "" && len(req.Password) < 6 {
		fields["password"] = "password must be at least 6 characters long"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Register creates the account and books the first consultation in one
// transaction. The booking carries its own payment compensation; if it fails
// nothing is persisted. If the booking succeeds but the account cannot be
// kept, the account record is removed again.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Fields: map[string]string{"email": "Email already exists!"}}
	}

	newUser := &models.User{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Email:   email,
		Contact: req.Contact,
		Role:    models.RoleClient,
		Status:  models.StatusActive,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		newUser.PasswordHash = string(hash)
	}

	if err := s.Repo.Create(newUser); err != nil {
		return nil, err
	}

	bookingResp, err := s.Bookings.CreateBooking(ctx, booking.CreateBookingRequest{
		Patient:         newUser,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		BookingFee:      req.BookingFee,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		// Registration only completes with the booking. The payment side was
		// already compensated inside the booking transaction.
		if delErr := s.Repo.Delete(newUser.ID); delErr != nil {
			s.Logger.Error("failed to roll back user after booking failure",
				zap.String("user_id", newUser.ID), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.Mailer.SendTemplate(newUser.Email, notification.TemplateWelcome, map[string]any{
		"Name": newUser.Name,
	}); err != nil {
		s.Logger.Warn("welcome email not sent", zap.String("user_id", newUser.ID), zap.Error(err))
	}

	token, err := s.issueToken(newUser)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: newUser, Booking: bookingResp}, nil
}

// issueToken signs a JWT and caches its hash for middleware verification and
// revocation.
func (s *DefaultUserService) issueToken(u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, TokenTTL)
	if err != nil {
		return "", err
	}
	cacheKey := utils.AuthCachePrefix + u.ID
	if err := utils.GetAuthCacheClient().Set(context.Background(), cacheKey, utils.HashToken(token), TokenTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache auth token", zap.String("user_id", u.ID), zap.Error(err))
	}
	return token, nil
}

// stampLastLogin records a successful login time, best effort.
func (s *DefaultUserService) stampLastLogin(userID string) {
	now := time.Now()
	if err := s.Repo.UpdateWithDocument(userID, lastLoginUpdate(now)); err != nil {
		s.Logger.Warn("failed to stamp last login", zap.String("user_id", userID), zap.Error(err))
	}
}
