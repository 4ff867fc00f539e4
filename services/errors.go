package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidOrder is returned when a placement request is missing its
// address or items, or carries a non-positive quantity.
var ErrInvalidOrder = errors.New("invalid order details")

// ErrOrderNotFound is returned when a payment notification references an
// order id that does not exist in the store.
var ErrOrderNotFound = errors.New("order not found")

// ProductNotFoundError identifies the order item whose product could not
// be resolved in the catalog.
type ProductNotFoundError struct {
	ID primitive.ObjectID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ID.Hex())
}
