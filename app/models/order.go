package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a point-in-time snapshot of the purchased product.
// Name, image and unit price are copied at order time so later catalog
// edits never change what the customer agreed to pay.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
	Price    float64            `json:"price" bson:"price"`
	Quantity int64              `json:"quantity" bson:"quantity"`
	AgeGroup string             `json:"ageGroup,omitempty" bson:"age_group,omitempty"`
	Size     string             `json:"size,omitempty" bson:"size,omitempty"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName" bson:"full_name"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Site            primitive.ObjectID  `json:"site" bson:"site"`
	User            *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
	Items           []OrderItem         `json:"items" bson:"items"`
	ShippingAddress ShippingAddress     `json:"shippingAddress" bson:"shipping_address"`
	PaymentMethod   string              `json:"paymentMethod" bson:"payment_method"`
	ItemsPrice      float64             `json:"itemsPrice" bson:"items_price"`
	ShippingPrice   float64             `json:"shippingPrice" bson:"shipping_price"`
	TotalPrice      float64             `json:"totalPrice" bson:"total_price"`
	IsPaid          bool                `json:"isPaid" bson:"is_paid"`
	PaidAt          *time.Time          `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	IsDelivered     bool                `json:"isDelivered" bson:"is_delivered"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updated_at"`
}
