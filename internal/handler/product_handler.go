package handler

import (
	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/repository"
	"go-jossydiva-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products with optional filters
// GET /api/v1/products?category=&search=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, err := h.service.GetProducts(filter)
	if err != nil {
		return fail(c, 500, "Failed to fetch products")
	}
	return ok(c, products)
}

// GetProduct returns one product with its resolved website price
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, product)
}

// CreateProduct creates a product
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if err := h.service.CreateProduct(&product, getUserID(c)); err != nil {
		return failFromErr(c, err)
	}

	return created(c, product)
}

// UpdateProduct edits a product in place. Cost price changes sent by
// the client are ignored.
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(id, &product, getUserID(c))
	if err != nil {
		return failFromErr(c, err)
	}

	return ok(c, updated)
}

// DeleteProduct removes a product by id
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(id, getUserID(c)); err != nil {
		return failFromErr(c, err)
	}

	return ok(c, fiber.Map{"message": "Product deleted"})
}

// DeleteMedia removes one media attachment without touching the product
// DELETE /api/v1/products/:id/media/:mediaId
func (h *ProductHandler) DeleteMedia(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}
	mediaID, err := uuid.Parse(c.Params("mediaId"))
	if err != nil {
		return fail(c, 400, "Invalid media ID")
	}

	if err := h.service.DeleteMedia(productID, mediaID); err != nil {
		return failFromErr(c, err)
	}

	return ok(c, fiber.Map{"message": "Media deleted"})
}
