package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AgePrice is a price tier keyed by an age-group label, e.g. "0-2Y".
type AgePrice struct {
	Age   string  `json:"age" bson:"age"`
	Price float64 `json:"price" bson:"price"`
}

// SizePrice is a price tier keyed by a garment size label, e.g. "XL".
type SizePrice struct {
	Size  string  `json:"size" bson:"size"`
	Price float64 `json:"price" bson:"price"`
}

// Product is the tenant-scoped catalog item. Price is the base unit
// price; AgePrices and SizePrices, when present, override it for the
// matching variant. OriginalPrice is the strike-through display price.
type Product struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Site          primitive.ObjectID  `json:"site" bson:"site"`
	Name          string              `json:"name" bson:"name"`
	Description   string              `json:"description,omitempty" bson:"description,omitempty"`
	Category      *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Brand         *primitive.ObjectID `json:"brand,omitempty" bson:"brand,omitempty"`
	Images        []string            `json:"images" bson:"images"`
	Video         string              `json:"video,omitempty" bson:"video,omitempty"`
	Price         float64             `json:"price" bson:"price"`
	OriginalPrice float64             `json:"originalPrice,omitempty" bson:"original_price,omitempty"`
	AgePrices     []AgePrice          `json:"agePrices,omitempty" bson:"age_prices,omitempty"`
	SizePrices    []SizePrice         `json:"sizePrices,omitempty" bson:"size_prices,omitempty"`
	CountInStock  int64               `json:"countInStock" bson:"count_in_stock"`
	IsFeatured    bool                `json:"isFeatured" bson:"is_featured"`
	IsPopular     bool                `json:"isPopular" bson:"is_popular"`
	IsActive      bool                `json:"isActive" bson:"is_active"`
	Views         int64               `json:"views" bson:"views"`
	BookedCount   int64               `json:"bookedCount" bson:"booked_count"`
	CreatedAt     time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updated_at"`
}
