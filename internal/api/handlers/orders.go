package handlers

import (
	"net/http"
	"supplychain-service/internal/api/dto"
	"supplychain-service/internal/services"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	Svc *services.OrderService
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.NewOrderResponse(o))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.Svc.Create(r.Context(), req.ToDomain())
	if err != nil {
		writeServiceError(w, r, "create order", err)
		return
	}

	w.Header().Set("Location", "/api/orders/"+o.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewOrderResponse(o))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.Svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, "update order status", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewOrderResponse(o))
}
