package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/printmaania/printmaania-gobackend/internal/middleware"
	"github.com/printmaania/printmaania-gobackend/internal/models"
	"github.com/printmaania/printmaania-gobackend/internal/services"
)

type QuoteHandler struct {
	quotes *services.QuoteService
}

func NewQuoteHandler(quotes *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Create handles POST /api/quotes. Auth is optional: a valid token attaches
// the submitter's identity to the quote, anonymous submissions go through
// without one.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var quote models.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.quotes.Create(r.Context(), &quote, middleware.UserFrom(r.Context()))
	if err != nil {
		if errors.Is(err, services.ErrMissingRequiredField) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"quote": created})
}

// ListAll handles GET /api/quotes (admin).
func (h *QuoteHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotes.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"quotes": quotes})
}

// ListMine handles POST /api/quotes/bulk: returns the requester's quotes.
func (h *QuoteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	quotes, err := h.quotes.ListByUser(r.Context(), requester.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"quotes": quotes})
}

// Confirm handles PUT /api/quotes/{id}/confirm (admin).
func (h *QuoteHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.Confirm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondQuoteError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"quote": quote})
}

// AssignTracking handles PUT /api/quotes/{id}/tracking (admin).
func (h *QuoteHandler) AssignTracking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackingID string `json:"tracking_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote, err := h.quotes.AssignTracking(r.Context(), mux.Vars(r)["id"], req.TrackingID)
	if err != nil {
		h.respondQuoteError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"quote": quote})
}

// MarkDelivered handles PUT /api/quotes/{id}/delivered (admin).
func (h *QuoteHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.MarkDelivered(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondQuoteError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"quote": quote})
}

// Cancel handles PUT /api/quotes/cancel/bulk/{id}: owner-only. A quote
// submitted anonymously has no owner and always fails here.
func (h *QuoteHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	quote, err := h.quotes.CancelByOwner(r.Context(), requester.ID, mux.Vars(r)["id"])
	if err != nil {
		h.respondQuoteError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"quote": quote})
}

func (h *QuoteHandler) respondQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrQuoteNotFound):
		respondError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, services.ErrNotYourQuote):
		respondError(w, http.StatusForbidden, "Not your quote")
	case errors.Is(err, services.ErrMissingTrackingID):
		respondError(w, http.StatusBadRequest, "Tracking id is required")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
