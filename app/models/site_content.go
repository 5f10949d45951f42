package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteContent is a per-tenant content block addressed by (site, key):
// header, hero, faq, about, footer. Data is an opaque document the
// storefront renders; the content service heals missing fields from
// per-key defaults on read.
type SiteContent struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Site      primitive.ObjectID `json:"site" bson:"site"`
	Key       string             `json:"key" bson:"key"`
	Data      bson.M             `json:"data" bson:"data"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
