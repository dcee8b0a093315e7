package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/printmaania/printmaania-gobackend/internal/models"
)

func testQuote() *models.Quote {
	return &models.Quote{
		ID:          primitive.NewObjectID(),
		Name:        "Asha",
		Email:       "asha@example.com",
		Mobile:      "9876543210",
		Company:     "Acme Prints",
		Description: "Conference merchandise",
		Requirements: map[string]models.QuoteRequirement{
			"Tshirts":  {Size: "L", Quantity: "200"},
			"Mugs":     {Quantity: "50", Description: "logo on both sides"},
			"Stickers": {},
		},
	}
}

func TestQuoteEmail_ContactAndRequirements(t *testing.T) {
	q := testQuote()
	body := QuoteEmail("New quote request", q, "We received your request.")

	assert.Contains(t, body, "New quote request")
	assert.Contains(t, body, q.ID.Hex())
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "asha@example.com")
	assert.Contains(t, body, "Acme Prints")
	assert.Contains(t, body, "Tshirts")
	assert.Contains(t, body, "Quantity: 200")
	assert.Contains(t, body, "Mugs")
	assert.Contains(t, body, "We received your request.")
	// Categories with no data are skipped entirely.
	assert.NotContains(t, body, "Stickers")
	// Categories never submitted do not appear either.
	assert.NotContains(t, body, "Certificates")
}

func TestQuoteEmail_StatusBadges(t *testing.T) {
	q := testQuote()
	body := QuoteEmail("Quote", q, "msg")
	assert.NotContains(t, body, "Confirmed")
	assert.NotContains(t, body, "Delivered")

	q.Confirmed = true
	q.TrackingID = "TRK-42"
	body = QuoteEmail("Quote", q, "msg")
	assert.Contains(t, body, "Confirmed")
	assert.Contains(t, body, "Tracking: TRK-42")
	assert.NotContains(t, body, ">Cancelled<")

	q.Delivered = true
	q.Cancelled = true
	body = QuoteEmail("Quote", q, "msg")
	assert.Contains(t, body, "Delivered")
	assert.Contains(t, body, "Cancelled")
}

func TestQuoteEmail_EscapesHTML(t *testing.T) {
	q := testQuote()
	q.Name = `<script>alert("x")</script>`
	body := QuoteEmail("Quote", q, "msg")

	assert.NotContains(t, body, "<script>")
	assert.True(t, strings.Contains(body, "&lt;script&gt;"))
}
