package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/printmaania/printmaania-gobackend/internal/middleware"
	"github.com/printmaania/printmaania-gobackend/internal/services"
)

type OrderHandler struct {
	orders    *services.OrderService
	addresses *services.AddressService
}

func NewOrderHandler(orders *services.OrderService, addresses *services.AddressService) *OrderHandler {
	return &OrderHandler{orders: orders, addresses: addresses}
}

// Create handles POST /api/orders. The shipping address is resolved from
// the requester's address book and copied by value into the order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	var req struct {
		ProductID     string `json:"product_id"`
		Size          string `json:"size"`
		Quantity      int    `json:"quantity"`
		UploadedImage string `json:"uploaded_image"`
		AddressID     string `json:"address_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	address, err := h.addresses.Get(r.Context(), requester.ID, req.AddressID)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			respondError(w, http.StatusNotFound, "Address not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	order, err := h.orders.Create(r.Context(), requester, req.ProductID, req.Size, req.Quantity, req.UploadedImage, *address)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"order": order})
}

// Upload handles PUT /api/orders/{id}/upload: appends transaction
// screenshots and persists the COD flag and description.
func (h *OrderHandler) Upload(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	var req struct {
		Screenshots []string `json:"screenshots"`
		COD         bool     `json:"cod"`
		Description string   `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orders.AppendScreenshots(r.Context(), requester.ID, mux.Vars(r)["id"], req.Screenshots, req.COD, req.Description)
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"order": order})
}

// Cancel handles PUT /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	order, err := h.orders.Cancel(r.Context(), requester.ID, mux.Vars(r)["id"])
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"order": order})
}

// ListMine handles GET /api/orders/myorders, newest first.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFrom(r.Context())

	orders, err := h.orders.ListByUser(r.Context(), requester.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"orders": orders})
}

// ListAll handles GET /api/orders (admin).
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{"orders": orders})
}

// MarkDelivered handles PUT /api/orders/{id}/delivered (admin).
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.MarkDelivered(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"order": order})
}

// AssignTracking handles PUT /api/orders/{id}/tracking (admin).
func (h *OrderHandler) AssignTracking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackingID string `json:"tracking_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orders.AssignTracking(r.Context(), mux.Vars(r)["id"], req.TrackingID)
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{"order": order})
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrNotYourOrder):
		respondError(w, http.StatusForbidden, "Not your order")
	case errors.Is(err, services.ErrMissingTrackingID):
		respondError(w, http.StatusBadRequest, "Tracking id is required")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
