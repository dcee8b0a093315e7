package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is admin-authored promotional content shown on the storefront.
type Banner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
