package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a user-owned shipping record. Orders copy it by value at
// creation time, so later edits never touch placed orders.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	DoorNo    string             `bson:"doorno" json:"doorno"`
	Street    string             `bson:"street" json:"street"`
	City      string             `bson:"city" json:"city"`
	Pincode   string             `bson:"pincode" json:"pincode"`
	State     string             `bson:"state" json:"state"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
