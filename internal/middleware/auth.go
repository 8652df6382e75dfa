package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkledger/internal/db"
	"linkledger/internal/models"
)

// AuthMiddleware handles user authentication via sessions. The resolved
// user is stored in Locals so every handler gets an explicit per-request
// role context.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireAuth ensures the user is authenticated.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user := m.resolveUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireEditor ensures the user can create and modify records
// (editor or admin).
func (m *AuthMiddleware) RequireEditor(c fiber.Ctx) error {
	user := m.resolveUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	if !user.CanEdit() {
		return fiber.NewError(fiber.StatusForbidden, "editor role required")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAdmin ensures the user is an admin.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user := m.resolveUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	if !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "admin role required")
	}

	c.Locals("user", user)
	return c.Next()
}

func (m *AuthMiddleware) resolveUser(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	sub, ok := sess.Get("user_sub").(string)
	if !ok || sub == "" {
		return nil
	}

	user, err := m.db.GetUserBySub(c.Context(), sub)
	if err != nil {
		sess.Destroy()
		return nil
	}
	return user
}

// CurrentUser returns the user resolved by an auth middleware, or nil.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
