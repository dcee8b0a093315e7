package models

import "encoding/json"

// Derived lifecycle statuses. Orders and quotes persist independent boolean
// flags; these helpers fold them into a single display status for responses.
// No write path consults them, so the flag combinations the API has always
// allowed (including cancelling a delivered order) remain representable.
const (
	OrderStatusPlaced           = "placed"
	OrderStatusPaymentSubmitted = "payment_submitted"
	OrderStatusCancelled        = "cancelled"
	OrderStatusDelivered        = "delivered"

	QuoteStatusSubmitted = "submitted"
	QuoteStatusConfirmed = "confirmed"
	QuoteStatusInTransit = "in_transit"
	QuoteStatusDelivered = "delivered"
	QuoteStatusCancelled = "cancelled"
)

// OrderStatusOf derives the effective status from the order's flags.
// Cancelled wins over Delivered when both are set: the cancel flag can only
// have been flipped after delivery, so it reflects the most recent action.
func OrderStatusOf(o *Order) string {
	switch {
	case o.Cancelled:
		return OrderStatusCancelled
	case o.Delivered:
		return OrderStatusDelivered
	case len(o.TransactionScreenshots) > 0:
		return OrderStatusPaymentSubmitted
	default:
		return OrderStatusPlaced
	}
}

// QuoteStatusOf derives the effective status from the quote's flags.
func QuoteStatusOf(q *Quote) string {
	switch {
	case q.Cancelled:
		return QuoteStatusCancelled
	case q.Delivered:
		return QuoteStatusDelivered
	case q.TrackingID != "":
		return QuoteStatusInTransit
	case q.Confirmed:
		return QuoteStatusConfirmed
	default:
		return QuoteStatusSubmitted
	}
}

// MarshalJSON adds the derived status next to the stored flags, so every
// order response carries both. The status is never persisted.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Status string `json:"status"`
	}{order(o), OrderStatusOf(&o)})
}

// MarshalJSON adds the derived status next to the stored flags.
func (q Quote) MarshalJSON() ([]byte, error) {
	type quote Quote
	return json.Marshal(struct {
		quote
		Status string `json:"status"`
	}{quote(q), QuoteStatusOf(&q)})
}
