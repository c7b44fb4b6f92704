package user

import (
	"strings"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func lastLoginUpdate(at time.Time) bson.M {
	return bson.M{"$set": bson.M{"last_login_at": at, "updated_at": at}}
}

// checkAccountState enforces the lifecycle-status gates applied on every
// credential operation.
func checkAccountState(u *models.User) error {
	switch u.Status {
	case models.StatusPending:
		return &AccountStateError{Status: u.Status, Message: "This account is under review by Admin. Please contact with Admin"}
	case models.StatusRejected:
		return &AccountStateError{Status: u.Status, Message: "This account is rejected by Admin. Please contact with Admin"}
	case models.StatusDelete:
		return &AccountStateError{Status: u.Status, Message: "This account deleted by Admin. Please contact with Admin"}
	case models.StatusSuspend, models.StatusInactive:
		return &AccountStateError{Status: u.Status, Message: "This account Suspend by Admin. Please contact with Admin"}
	}
	return nil
}

// Login verifies credentials and issues a token.
func (s *DefaultUserService) Login(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"email":    "email is required",
			"password": "password is required",
		}}
	}

	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &CredentialsError{}
	}
	if err := checkAccountState(u); err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, &CredentialsError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, &CredentialsError{}
	}

	s.stampLastLogin(u.ID)

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}
