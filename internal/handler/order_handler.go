package handler

import (
	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// CreateOrder takes a website order into the queue
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var order model.Order
	if err := c.BodyParser(&order); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	view, err := h.service.CreateOrder(&order)
	if err != nil {
		return failFromErr(c, err)
	}

	return created(c, view)
}

// GetOrders lists orders, optionally filtered by compact status label
// GET /api/v1/orders?status=pending
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrders(c.Query("status"))
	if err != nil {
		return fail(c, 500, "Failed to fetch orders")
	}
	return ok(c, orders)
}

// GetOrder returns one order
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid order ID")
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, order)
}

// UpdateStatusRequest carries the target status (compact label) and
// an optional payment method recorded on fulfillment.
type UpdateStatusRequest struct {
	Status        string              `json:"status"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
}

// UpdateStatus applies a lifecycle transition
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if req.Status == "" {
		return fail(c, 400, "Status is required")
	}

	order, err := h.service.UpdateStatus(id, req.Status, req.PaymentMethod, getUserID(c))
	if err != nil {
		return failFromErr(c, err)
	}

	return ok(c, order)
}
