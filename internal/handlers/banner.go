package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/printmaania/printmaania-gobackend/internal/models"
	"github.com/printmaania/printmaania-gobackend/internal/services"
)

type BannerHandler struct {
	banners *services.BannerService
}

func NewBannerHandler(banners *services.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

// List handles GET /api/banners (public).
func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"banners": banners})
}

// Create handles POST /api/banners (admin).
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var banner models.Banner
	if err := json.NewDecoder(r.Body).Decode(&banner); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.banners.Create(r.Context(), &banner)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"banner": created})
}

// Delete handles DELETE /api/banners/{id} (admin).
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.banners.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, services.ErrBannerNotFound) {
			respondError(w, http.StatusNotFound, "Banner not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"message": "Banner deleted"})
}
