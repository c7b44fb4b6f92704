package user

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"medibook/config"
	"medibook/services/notification"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL bounds the validity of a password reset link.
const resetTokenTTL = 10 * time.Minute

func newResetToken() (token, tokenHash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token = hex.EncodeToString(raw)
	return token, utils.HashToken(token), nil
}

// ForgotPassword issues a reset token and mails the reset link. Only the
// SHA-256 hash of the token is stored.
func (s *DefaultUserService) ForgotPassword(email, origin string) error {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u == nil {
		return &NotFoundError{}
	}
	if err := checkAccountState(u); err != nil {
		return err
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.Repo.UpdateWithDocument(u.ID, bson.M{"$set": bson.M{
		"password_reset_token":   tokenHash,
		"password_reset_expires": expires,
	}}); err != nil {
		return err
	}

	if origin == "" {
		origin = config.AppConfig.FrontendURL
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", origin, token)

	if err := s.Mailer.SendTemplate(u.Email, notification.TemplateForgotPassword, map[string]any{
		"Name":     u.Name,
		"ResetURL": resetURL,
	}); err != nil {
		// The token is useless if the link never arrives; clear it again.
		if clearErr := s.Repo.UpdateWithDocument(u.ID, bson.M{"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		}}); clearErr != nil {
			s.Logger.Error("failed to clear reset token", zap.String("user_id", u.ID), zap.Error(clearErr))
		}
		return fmt.Errorf("there was an error sending the email, try again later: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *DefaultUserService) ResetPassword(token, newPassword string) (*AuthResponse, error) {
	if token == "" || newPassword == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"token":    "token is required",
			"password": "password is required",
		}}
	}
	if len(newPassword) < 6 {
		return nil, &ValidationError{Fields: map[string]string{
			"password": "password must be at least 6 characters long",
		}}
	}

	u, err := s.Repo.GetByResetToken(utils.HashToken(token))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &NotFoundError{}
	}
	if err := checkAccountState(u); err != nil {
		return nil, err
	}
	if u.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(newPassword)) == nil {
			return nil, &ValidationError{Fields: map[string]string{
				"password": "Your new password must be different from the current one.",
			}}
		}
	}

	if err := s.setPassword(u.ID, newPassword); err != nil {
		return nil, err
	}

	u.PasswordResetToken = ""
	u.PasswordResetExpires = nil

	authToken, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: authToken, User: u}, nil
}

// UpdatePassword changes the password of an authenticated user.
func (s *DefaultUserService) UpdatePassword(userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return &ValidationError{Fields: map[string]string{
			"oldPassword": "old password is required",
			"password":    "password is required",
		}}
	}

	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return &NotFoundError{ID: userID}
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return &ValidationError{Fields: map[string]string{
			"oldPassword": "Provided old password is incorrect",
		}}
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(newPassword)) == nil {
		return &ValidationError{Fields: map[string]string{
			"password": "Your new password must be different from the current one.",
		}}
	}
	return s.setPassword(userID, newPassword)
}

// CreateFirstPassword sets the password of an account that was created
// without one.
func (s *DefaultUserService) CreateFirstPassword(userID, password string) error {
	if password == "" || len(password) < 6 {
		return &ValidationError{Fields: map[string]string{
			"password": "password must be at least 6 characters long",
		}}
	}

	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return &NotFoundError{ID: userID}
	}
	if u.PasswordHash != "" {
		return &ValidationError{Fields: map[string]string{
			"password": "a password is already set for this account",
		}}
	}
	return s.setPassword(userID, password)
}

// setPassword hashes and stores a new password, stamping the change time and
// clearing any outstanding reset token.
func (s *DefaultUserService) setPassword(userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.Repo.UpdateWithDocument(userID, bson.M{
		"$set": bson.M{
			"password_hash":       string(hash),
			"password_changed_at": now.Add(-time.Second),
			"updated_at":          now,
		},
		"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		},
	})
}
