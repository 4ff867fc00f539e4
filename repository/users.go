package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"grocery-api/models"
)

// UserDirectory is a read-only view of the users collection
type UserDirectory struct {
	collection *mongo.Collection
}

// NewUserDirectory creates a UserDirectory over the users collection
func NewUserDirectory(client *mongo.Client) *UserDirectory {
	return &UserDirectory{collection: client.Database(DatabaseName).Collection("users")}
}

// FindUser resolves a user id
func (d *UserDirectory) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := d.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddressBook is a read-only view of the addresses collection
type AddressBook struct {
	collection *mongo.Collection
}

// NewAddressBook creates an AddressBook over the addresses collection
func NewAddressBook(client *mongo.Client) *AddressBook {
	return &AddressBook{collection: client.Database(DatabaseName).Collection("addresses")}
}

// FindAddress resolves an address id
func (b *AddressBook) FindAddress(ctx context.Context, id primitive.ObjectID) (*models.Address, error) {
	var address models.Address
	if err := b.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&address); err != nil {
		return nil, err
	}
	return &address, nil
}
