package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is a product review. Shopper-submitted reviews start pending
// and only show on the storefront once approved; admin-authored ones
// are approved immediately and flagged IsAdmin.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Site      primitive.ObjectID `json:"site" bson:"site"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	User      string             `json:"user" bson:"user"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	Status    string             `json:"status" bson:"status"`
	IsAdmin   bool               `json:"isAdmin" bson:"is_admin"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
