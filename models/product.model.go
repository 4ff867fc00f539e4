package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents an item in the catalog. OfferPrice is the selling
// price in whole currency units; the checkout gateway receives it
// converted to minor units.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Category   string             `bson:"category" json:"category"`
	Image      []string           `bson:"image" json:"image"`
	Price      int64              `bson:"price" json:"price"`
	OfferPrice int64              `bson:"offer_price" json:"offer_price"`
	Seller     primitive.ObjectID `bson:"seller" json:"seller"`
	InStock    bool               `bson:"in_stock" json:"in_stock"`
}
