package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkledger/internal/db"
	"linkledger/internal/middleware"
	"linkledger/internal/models"
)

// UserHandler handles user management via JSON API.
type UserHandler struct {
	db *db.DB
}

// NewUserHandler creates a new API user handler.
func NewUserHandler(database *db.DB) *UserHandler {
	return &UserHandler{db: database}
}

// Me returns the authenticated user.
func (h *UserHandler) Me(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return jsonSuccess(c, user)
}

// List returns all users.
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.db.GetAllUsers(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}
	return jsonSuccess(c, users)
}

// UpdateRole changes a user's role.
func (h *UserHandler) UpdateRole(c fiber.Ctx) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !models.ValidRole(body.Role) {
		return jsonError(c, fiber.StatusBadRequest, "role must be admin, editor, or viewer")
	}

	// An admin demoting themselves would lock everyone out of user management.
	if id == admin.ID && body.Role != models.RoleAdmin {
		return jsonError(c, fiber.StatusBadRequest, "you cannot change your own role")
	}

	if err := h.db.UpdateUserRole(c.Context(), id, body.Role); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update role")
	}

	return jsonSuccess(c, fiber.Map{"message": "role updated"})
}
