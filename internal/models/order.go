package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderedProduct is the snapshot of a catalog product taken when the order
// is placed. TotalPrice is computed once here and never recomputed.
type OrderedProduct struct {
	ProductID      primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name           string             `bson:"name" json:"name"`
	Pictures       []string           `bson:"pictures" json:"pictures"`
	Size           string             `bson:"size" json:"size"`
	Price          float64            `bson:"price" json:"price"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	TotalPrice     float64            `bson:"total_price" json:"total_price"`
	UploadRequired bool               `bson:"uploadrequired" json:"uploadrequired"`
	UploadedImage  string             `bson:"uploaded_image,omitempty" json:"uploaded_image,omitempty"`
}

// Order is a direct purchase record. Status lives in the independent
// Cancelled/Delivered flags plus the screenshot list; see OrderStatusOf.
type Order struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                 primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserName               string             `bson:"user_name" json:"user_name"`
	UserEmail              string             `bson:"user_email" json:"user_email"`
	Product                OrderedProduct     `bson:"product" json:"product"`
	Address                Address            `bson:"address" json:"address"`
	TransactionScreenshots []string           `bson:"transaction_screenshots" json:"transaction_screenshots"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	COD                    bool               `bson:"cod" json:"cod"`
	Cancelled              bool               `bson:"cancelled" json:"cancelled"`
	Delivered              bool               `bson:"delivered" json:"delivered"`
	TrackingID             string             `bson:"tracking_id,omitempty" json:"tracking_id,omitempty"`
	CreatedAt              time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewOrder snapshots the product and address into a fresh order for the
// given user. The address is copied by value.
func NewOrder(user *User, product *Product, size string, quantity int, uploadedImage string, address Address) *Order {
	now := time.Now()
	return &Order{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Product: OrderedProduct{
			ProductID:      product.ID,
			Name:           product.Name,
			Pictures:       product.Pictures,
			Size:           size,
			Price:          product.Price,
			Quantity:       quantity,
			TotalPrice:     product.Price * float64(quantity),
			UploadRequired: product.UploadRequired,
			UploadedImage:  uploadedImage,
		},
		Address:                address,
		TransactionScreenshots: []string{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}
