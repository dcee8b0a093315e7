package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewOrder_SnapshotAndTotal(t *testing.T) {
	user := &User{
		ID:    primitive.NewObjectID(),
		Name:  "A",
		Email: "a@x.com",
	}
	product := &Product{
		ID:             primitive.NewObjectID(),
		Name:           "Custom Mug",
		Price:          100,
		MRP:            150,
		Pictures:       []string{"mug.jpg"},
		UploadRequired: true,
	}
	address := Address{Name: "A", City: "Chennai", Pincode: "600001"}

	order := NewOrder(user, product, "M", 3, "design.png", address)

	assert.Equal(t, float64(300), order.Product.TotalPrice)
	assert.Equal(t, 3, order.Product.Quantity)
	assert.Equal(t, product.ID, order.Product.ProductID)
	assert.Equal(t, "Custom Mug", order.Product.Name)
	assert.Equal(t, "design.png", order.Product.UploadedImage)
	assert.True(t, order.Product.UploadRequired)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "a@x.com", order.UserEmail)
	assert.Equal(t, "Chennai", order.Address.City)
	require.NotNil(t, order.TransactionScreenshots)
	assert.Empty(t, order.TransactionScreenshots)
	assert.False(t, order.Cancelled)
	assert.False(t, order.Delivered)
}

func TestNewOrder_TotalFrozenAgainstProductChange(t *testing.T) {
	user := &User{ID: primitive.NewObjectID()}
	product := &Product{ID: primitive.NewObjectID(), Price: 50}

	order := NewOrder(user, product, "L", 2, "", Address{})
	require.Equal(t, float64(100), order.Product.TotalPrice)

	// A later catalog price change must not affect the placed order.
	product.Price = 500
	assert.Equal(t, float64(100), order.Product.TotalPrice)
}
