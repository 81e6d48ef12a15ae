package handler

import (
	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// GetUsers lists staff accounts
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetUsers()
	if err != nil {
		return fail(c, 500, "Failed to fetch users")
	}
	return ok(c, users)
}

// GetUser returns one account
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid user ID")
	}

	user, err := h.service.GetUser(id)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, user)
}

// CreateUserRequest carries a new account plus its initial password.
type CreateUserRequest struct {
	model.User
	Password string `json:"password"`
}

// CreateUser creates a staff account
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	user, err := h.service.CreateUser(&req.User, req.Password)
	if err != nil {
		return failFromErr(c, err)
	}

	return created(c, user)
}

// UpdateUser edits an account
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid user ID")
	}

	var req model.User
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	user, err := h.service.UpdateUser(id, &req)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, user)
}

// DeleteUser removes an account
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid user ID")
	}

	if err := h.service.DeleteUser(id, getUserID(c)); err != nil {
		return failFromErr(c, err)
	}
	return ok(c, fiber.Map{"message": "User deleted"})
}
