package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/printmaania/printmaania-gobackend/internal/models"
	"github.com/printmaania/printmaania-gobackend/internal/services"
)

type OfferHandler struct {
	offers *services.OfferService
}

func NewOfferHandler(offers *services.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// List handles GET /api/offers/all (public).
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offers.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"offers": offers})
}

// Create handles POST /api/offers (admin).
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var offer models.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.offers.Create(r.Context(), &offer)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"offer": created})
}

// Update handles PUT /api/offers/{id} (admin).
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	var offer models.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.offers.Update(r.Context(), mux.Vars(r)["id"], &offer)
	if err != nil {
		if errors.Is(err, services.ErrOfferNotFound) {
			respondError(w, http.StatusNotFound, "Offer not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"offer": updated})
}

// Delete handles DELETE /api/offers/{id} (admin).
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.offers.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, services.ErrOfferNotFound) {
			respondError(w, http.StatusNotFound, "Offer not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"message": "Offer deleted"})
}
