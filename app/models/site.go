package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Site is the canonical record of one storefront tenant. Every
// tenant-scoped entity references it by id.
type Site struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Slug      string             `json:"slug" bson:"slug"` // unique, immutable
	Name      string             `json:"name" bson:"name"`
	IsActive  bool               `json:"isActive" bson:"is_active"`
	Theme     SiteTheme          `json:"theme" bson:"theme"`
	Settings  SiteSettings       `json:"settings" bson:"settings"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// SiteTheme holds presentation knobs the storefront client reads.
type SiteTheme struct {
	PrimaryColor   string `json:"primaryColor" bson:"primary_color"`
	SecondaryColor string `json:"secondaryColor" bson:"secondary_color"`
	Logo           string `json:"logo" bson:"logo"`
	Favicon        string `json:"favicon" bson:"favicon"`
}

// SiteSettings holds commerce settings per tenant.
type SiteSettings struct {
	Currency       string  `json:"currency" bson:"currency"`
	ShippingPrice  float64 `json:"shippingPrice" bson:"shipping_price"`
	WhatsAppNumber string  `json:"whatsappNumber" bson:"whatsapp_number"`
	RelayWebhook   string  `json:"relayWebhook,omitempty" bson:"relay_webhook,omitempty"`
}
