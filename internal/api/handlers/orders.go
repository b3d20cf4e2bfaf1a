package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/middleware"
	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/database"
	"github.com/hugh/plantnet/internal/tasks"
)

type OrderHandler struct {
	orders   OrderStore
	reports  ReportStore
	notifier *tasks.Notifier
}

func NewOrderHandler(orders OrderStore, reports ReportStore, notifier *tasks.Notifier) *OrderHandler {
	return &OrderHandler{orders: orders, reports: reports, notifier: notifier}
}

// Create handles POST /order
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), req.ToOrder(middleware.GetUserEmail(r.Context())))
	if err != nil {
		response.Error(w, err)
		return
	}

	h.notifier.OrderPlaced(r.Context(), tasks.OrderPlacedPayload{
		OrderID:       order.ID.Hex(),
		PlantID:       order.PlantID,
		CustomerEmail: order.Customer.Email,
		CustomerName:  order.Customer.Name,
		SellerEmail:   order.Seller,
		Quantity:      order.Quantity,
		Price:         order.Price,
	})

	response.JSON(w, http.StatusCreated, order)
}

// UpdateStatus handles PATCH /orders-status/{id}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := database.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	var req dto.OrderStatusRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.orders.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// Delete handles DELETE /orders/{id}. Delivered orders answer 409.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := database.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	res, err := h.orders.DeleteOrder(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// ForCustomer handles GET /orders/customers/{email}
func (h *OrderHandler) ForCustomer(w http.ResponseWriter, r *http.Request) {
	views, err := h.reports.OrdersForCustomer(r.Context(), emailParam(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nonNil(views))
}

// ForSeller handles GET /orders/seller/{email}
func (h *OrderHandler) ForSeller(w http.ResponseWriter, r *http.Request) {
	views, err := h.reports.OrdersForSeller(r.Context(), emailParam(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nonNil(views))
}
