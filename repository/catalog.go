package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"grocery-api/models"
	"grocery-api/services"
)

// DatabaseName is the MongoDB database shared by all collections
const DatabaseName = "grocery"

// Catalog is the MongoDB-backed product collection
type Catalog struct {
	collection *mongo.Collection
}

// NewCatalog creates a Catalog over the products collection
func NewCatalog(client *mongo.Client) *Catalog {
	return &Catalog{collection: client.Database(DatabaseName).Collection("products")}
}

// FindProduct resolves a product id to its catalog document
func (c *Catalog) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := c.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &services.ProductNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductIDsBySeller returns the distinct ids of the seller's products
func (c *Catalog) ProductIDsBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := c.collection.Distinct(ctx, "_id", bson.M{"seller": sellerID})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
