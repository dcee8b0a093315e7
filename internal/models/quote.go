package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteCategories are the product categories a bulk quote may itemize.
// The requirements map is not validated against this list; it only drives
// iteration order when rendering notifications.
var QuoteCategories = []string{
	"Tshirts",
	"Banners",
	"IdCards",
	"Certificates",
	"Stickers",
	"Photoframes",
	"Mugs",
}

// QuoteRequirement is one category's line in a bulk quote request.
type QuoteRequirement struct {
	Size        string `bson:"size,omitempty" json:"size,omitempty"`
	Type        string `bson:"type,omitempty" json:"type,omitempty"`
	Quantity    string `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Empty reports whether the requirement carries no data at all.
func (r QuoteRequirement) Empty() bool {
	return r.Size == "" && r.Type == "" && r.Quantity == "" && r.Image == "" && r.Description == ""
}

// Quote is a multi-category bulk print request. UserID is only set when the
// submitter was logged in; anonymous quotes carry the zero ObjectID and can
// never pass the owner check on cancellation.
type Quote struct {
	ID           primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	Name         string                      `bson:"name" json:"name"`
	Email        string                      `bson:"email" json:"email"`
	Mobile       string                      `bson:"mobile" json:"mobile"`
	Company      string                      `bson:"company" json:"company"`
	Description  string                      `bson:"description" json:"description"`
	Requirements map[string]QuoteRequirement `bson:"requirements" json:"requirements"`
	UserID       primitive.ObjectID          `bson:"user_id,omitempty" json:"user_id,omitempty"`
	UserName     string                      `bson:"user_name,omitempty" json:"user_name,omitempty"`
	UserEmail    string                      `bson:"user_email,omitempty" json:"user_email,omitempty"`
	Confirmed    bool                        `bson:"confirm" json:"confirm"`
	Cancelled    bool                        `bson:"cancelled" json:"cancelled"`
	Delivered    bool                        `bson:"delivered" json:"delivered"`
	TrackingID   string                      `bson:"tracking_id,omitempty" json:"tracking_id,omitempty"`
	CreatedAt    time.Time                   `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time                   `bson:"updated_at" json:"updated_at"`
}

// CancellableBy reports whether userID owns the quote. Anonymous quotes have
// no owner, so no userID matches, not even the zero one.
func (q *Quote) CancellableBy(userID primitive.ObjectID) bool {
	return !q.UserID.IsZero() && q.UserID == userID
}
