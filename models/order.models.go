package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment types for an order
const (
	PaymentTypeCOD    = "COD"
	PaymentTypeOnline = "Online"
)

// OrderItem references a catalog product and a quantity
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order represents a user's order
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Address     primitive.ObjectID `bson:"address" json:"address"`
	Amount      int64              `bson:"amount" json:"amount"`
	PaymentType string             `bson:"payment_type" json:"payment_type"` // "COD" or "Online"
	IsPaid      bool               `bson:"is_paid" json:"is_paid"`
	PaidAt      *time.Time         `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	PaymentID   string             `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// PopulatedOrderItem is an order item with its product document resolved
type PopulatedOrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// PopulatedOrder is an order as returned by the listing endpoints, with
// item products and the delivery address resolved
type PopulatedOrder struct {
	ID          primitive.ObjectID   `json:"id"`
	UserID      primitive.ObjectID   `json:"user_id"`
	Items       []PopulatedOrderItem `json:"items"`
	Address     Address              `json:"address"`
	Amount      int64                `json:"amount"`
	PaymentType string               `json:"payment_type"`
	IsPaid      bool                 `json:"is_paid"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	PaymentID   string               `json:"payment_id,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}
