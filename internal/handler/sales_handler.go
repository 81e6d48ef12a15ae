package handler

import (
	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// CreateSale records a walk-in or website sale and decrements stock
// POST /api/v1/sales
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var sale model.Sale
	if err := c.BodyParser(&sale); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	recorded, err := h.service.RecordSale(&sale, getUserID(c))
	if err != nil {
		return failFromErr(c, err)
	}

	return created(c, recorded)
}

// GetSales lists all sales, newest first
// GET /api/v1/sales
func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetSales()
	if err != nil {
		return fail(c, 500, "Failed to fetch sales")
	}
	return ok(c, sales)
}

// GetSale returns one sale
// GET /api/v1/sales/:id
func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid sale ID")
	}

	sale, err := h.service.GetSale(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, sale)
}

// GetReceipt returns the structured receipt payload for a sale
// GET /api/v1/receipts/sales/:id
func (h *SalesHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid sale ID")
	}

	receipt, err := h.service.GetReceipt(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, receipt)
}
