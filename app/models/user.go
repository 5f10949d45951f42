package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a shopper account. Its credential namespace is independent of
// AdminUser: the same email may exist in both collections.
type User struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	Email     string              `json:"email" bson:"email"` // unique
	Password  string              `json:"-" bson:"password"`  // bcrypt hash, never serialised
	Role      string              `json:"role" bson:"role"`   // "user", legacy rows may carry "admin"
	Site      *primitive.ObjectID `json:"site,omitempty" bson:"site,omitempty"`
	Phone     string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string              `json:"address,omitempty" bson:"address,omitempty"`
	City      string              `json:"city,omitempty" bson:"city,omitempty"`
	IsActive  bool                `json:"isActive" bson:"is_active"`
	CreatedAt time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updated_at"`
}

// PendingRegistration is the short-lived record kept in the ephemeral
// store between register-init and verify-otp. Never persisted to MongoDB.
type PendingRegistration struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // already bcrypt-hashed
	Site      string    `json:"site,omitempty"`
	OTP       string    `json:"otp"` // sha-256 digest, never the code itself
	CreatedAt time.Time `json:"createdAt"`
}
