package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a tenant-scoped catalog grouping. Name is unique per site.
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Site        primitive.ObjectID `json:"site" bson:"site"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Brand is a tenant-scoped manufacturer label. Name is unique per site.
type Brand struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Site        primitive.ObjectID `json:"site" bson:"site"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}
