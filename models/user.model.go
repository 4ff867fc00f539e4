package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a user's saved delivery address
type Address struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Street  string             `bson:"street" json:"street"`
	City    string             `bson:"city" json:"city"`
	State   string             `bson:"state" json:"state"`
	ZipCode string             `bson:"zipcode" json:"zipcode"`
}

// User represents a user in the system. Account management lives in a
// separate service; this API only reads users for identity and email.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"` // "user", "seller" or "admin"
}
