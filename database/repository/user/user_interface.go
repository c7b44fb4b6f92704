package userRepo

import (
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListFilter narrows user listings. Zero values mean "no filter".
type ListFilter struct {
	Role   string
	Status string
	Search string
	Page   int
	Limit  int
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateWithDocument(id string, update bson.M) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Delete(id string) error

	// GetByResetToken finds the user holding the given hashed reset token with
	// an unexpired expiry.
	GetByResetToken(tokenHash string) (*models.User, error)

	List(filter ListFilter) ([]models.User, int64, error)

	// CountByStatus returns the total user count and a per-status breakdown.
	CountByStatus() (int64, map[string]int64, error)
}
