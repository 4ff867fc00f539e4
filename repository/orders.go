package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"grocery-api/models"
	"grocery-api/services"
)

// OrderStore is the MongoDB-backed order collection
type OrderStore struct {
	collection *mongo.Collection
}

// NewOrderStore creates an OrderStore over the orders collection
func NewOrderStore(client *mongo.Client) *OrderStore {
	return &OrderStore{collection: client.Database(DatabaseName).Collection("orders")}
}

// visibleFilter matches orders that show up in listings: COD, or online
// and already paid.
func visibleFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"payment_type": models.PaymentTypeCOD},
		{"is_paid": true},
	}}
}

// Insert stores a new order and returns its assigned id
func (s *OrderStore) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *OrderStore) findSorted(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindVisibleByUser returns the user's visible orders, newest first
func (s *OrderStore) FindVisibleByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	filter := visibleFilter()
	filter["user_id"] = userID
	return s.findSorted(ctx, filter)
}

// FindVisibleByProducts returns visible orders containing any of the
// given products, newest first
func (s *OrderStore) FindVisibleByProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	filter := visibleFilter()
	filter["items.product"] = bson.M{"$in": productIDs}
	return s.findSorted(ctx, filter)
}

// FindVisible returns every visible order, newest first
func (s *OrderStore) FindVisible(ctx context.Context) ([]models.Order, error) {
	return s.findSorted(ctx, visibleFilter())
}

// MarkPaid flips the order to paid and records the payment intent. The
// update is a plain $set keyed by id, so replaying it rewrites the same
// state.
func (s *OrderStore) MarkPaid(ctx context.Context, orderID primitive.ObjectID, paymentID string, paidAt time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"is_paid":    true,
		"paid_at":    paidAt,
		"payment_id": paymentID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
