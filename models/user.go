package models

import "time"

// User roles.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User lifecycle statuses, set by admins.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusSuspend  = "Suspend"
	StatusDelete   = "Delete"
	StatusPending  = "Pending"
	StatusRejected = "Rejected"
)

// User represents a registered account (client or admin).
type User struct {
	ID             string `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	Email          string `bson:"email" json:"email"`
	Contact        string `bson:"contact,omitempty" json:"contact,omitempty"`
	Address        string `bson:"address,omitempty" json:"address,omitempty"`
	City           string `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode     string `bson:"postal_code,omitempty" json:"postalCode,omitempty"`
	ProfilePicture string `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Role           string `bson:"role" json:"role"`
	Status         string `bson:"status" json:"status"`

	// Credential material. Never serialized to JSON.
	PasswordHash         string     `bson:"password_hash,omitempty" json:"-"`
	PasswordChangedAt    *time.Time `bson:"password_changed_at,omitempty" json:"-"`
	PasswordResetToken   string     `bson:"password_reset_token,omitempty" json:"-"`
	PasswordResetExpires *time.Time `bson:"password_reset_expires,omitempty" json:"-"`

	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// UserUpdateRequest carries the mutable profile fields.
type UserUpdateRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Contact        string `json:"contact,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
