package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/printmaania/printmaania-gobackend/internal/models"
)

func validQuote() *models.Quote {
	return &models.Quote{
		Name:        "Asha",
		Email:       "asha@example.com",
		Mobile:      "+911234567890",
		Company:     "Asha Prints",
		Description: "500 tshirts for a college fest",
	}
}

func TestQuoteCreate_MissingRequiredFields(t *testing.T) {
	// Validation runs before any store access, so a zero-value service is
	// enough to exercise every rejection.
	svc := &QuoteService{}

	tests := []struct {
		field string
		blank func(*models.Quote)
	}{
		{"name", func(q *models.Quote) { q.Name = "" }},
		{"email", func(q *models.Quote) { q.Email = "" }},
		{"mobile", func(q *models.Quote) { q.Mobile = "" }},
		{"company", func(q *models.Quote) { q.Company = "" }},
		{"description", func(q *models.Quote) { q.Description = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			quote := validQuote()
			tt.blank(quote)

			_, err := svc.Create(context.Background(), quote, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingRequiredField)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestQuoteCancellableBy(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	owned := &models.Quote{UserID: owner}
	assert.True(t, owned.CancellableBy(owner))
	assert.False(t, owned.CancellableBy(stranger))

	// Anonymous quotes carry the zero user id; nobody matches it, not even
	// a requester presenting the zero id.
	anonymous := &models.Quote{}
	assert.False(t, anonymous.CancellableBy(owner))
	assert.False(t, anonymous.CancellableBy(primitive.NilObjectID))
}
