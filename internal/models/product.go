package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product catalog entry. Deleted is a soft-delete flag: public listings
// filter it out, but orders that reference the product keep resolving it.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Sizes          []string           `bson:"sizes" json:"sizes"`
	MRP            float64            `bson:"mrp" json:"mrp"`
	Price          float64            `bson:"price" json:"price"`
	Pictures       []string           `bson:"pictures" json:"pictures"`
	UploadRequired bool               `bson:"uploadrequired" json:"uploadrequired"`
	Category       string             `bson:"category" json:"category"`
	Phrases        []string           `bson:"phrases" json:"phrases"`
	Deleted        bool               `bson:"deleted" json:"deleted"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
