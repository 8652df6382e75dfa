package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkledger/internal/db"
)

// TrashHandler handles trash listing, restore, and permanent deletion.
type TrashHandler struct {
	db *db.DB
}

// NewTrashHandler creates a new trash handler.
func NewTrashHandler(database *db.DB) *TrashHandler {
	return &TrashHandler{db: database}
}

// List returns all trashed backlinks and projects.
func (h *TrashHandler) List(c fiber.Ctx) error {
	backlinks, err := h.db.GetTrashedBacklinks(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch trash")
	}

	projects, err := h.db.GetTrashedProjects(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch trash")
	}

	return jsonSuccess(c, fiber.Map{
		"backlinks": backlinks,
		"projects":  projects,
	})
}

// RestoreBacklink returns a trashed backlink to its original location, or
// to the global collection when its project no longer exists.
func (h *TrashHandler) RestoreBacklink(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid trash record id")
	}

	if err := h.db.RestoreBacklink(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrTrashRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "trash record not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to restore backlink")
	}

	return jsonSuccess(c, fiber.Map{"message": "backlink restored"})
}

// RestoreProject returns a trashed project to the projects collection.
func (h *TrashHandler) RestoreProject(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid trash record id")
	}

	if err := h.db.RestoreProject(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrTrashRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "trash record not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to restore project")
	}

	return jsonSuccess(c, fiber.Map{"message": "project restored"})
}

// PermanentDeleteBacklink removes a trashed backlink for good. The caller
// must confirm with ?confirm=true; there is no recovery afterwards.
func (h *TrashHandler) PermanentDeleteBacklink(c fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return jsonError(c, fiber.StatusBadRequest, "permanent deletion requires confirm=true")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid trash record id")
	}

	if err := h.db.PermanentDeleteBacklink(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrTrashRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "trash record not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete backlink")
	}

	return jsonSuccess(c, fiber.Map{"message": "backlink permanently deleted"})
}

// PermanentDeleteProject removes a trashed project for good, subcollection
// backlinks included. The caller must confirm with ?confirm=true.
func (h *TrashHandler) PermanentDeleteProject(c fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return jsonError(c, fiber.StatusBadRequest, "permanent deletion requires confirm=true")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid trash record id")
	}

	if err := h.db.PermanentDeleteProject(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrTrashRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "trash record not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete project")
	}

	return jsonSuccess(c, fiber.Map{"message": "project permanently deleted"})
}
