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

type AddressHandler struct {
	addresses *services.AddressService
}

func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Create handles POST /api/address.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	var address models.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.addresses.Create(r.Context(), requester.ID, &address)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"address": created})
}

// Update handles PUT /api/address/{id}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	var address models.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.addresses.Update(r.Context(), requester.ID, mux.Vars(r)["id"], &address)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			respondError(w, http.StatusNotFound, "Address not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"address": updated})
}

// Delete handles DELETE /api/address/{id}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	if err := h.addresses.Delete(r.Context(), requester.ID, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			respondError(w, http.StatusNotFound, "Address not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"message": "Address deleted"})
}

// ListMine handles GET /api/address/myaddresses.
func (h *AddressHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	addresses, err := h.addresses.ListByUser(r.Context(), requester.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"addresses": addresses})
}
