package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkledger/internal/db"
	"linkledger/internal/email"
	"linkledger/internal/middleware"
)

// DeleteRequestHandler handles admin review of pending delete requests.
type DeleteRequestHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewDeleteRequestHandler creates a new delete request handler.
func NewDeleteRequestHandler(database *db.DB, notifier *email.Notifier) *DeleteRequestHandler {
	return &DeleteRequestHandler{db: database, notifier: notifier}
}

// List returns all requests awaiting review.
func (h *DeleteRequestHandler) List(c fiber.Ctx) error {
	requests, err := h.db.GetPendingDeleteRequests(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch delete requests")
	}
	return jsonSuccess(c, requests)
}

// Approve executes the requested deletion as a trash move and removes the
// request. The requester is notified of the outcome.
func (h *DeleteRequestHandler) Approve(c fiber.Ctx) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	// Fetched before approval removes the row, for the notification.
	req, err := h.db.GetDeleteRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrDeleteRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "delete request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch delete request")
	}

	if err := h.db.ApproveDeleteRequest(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrDeleteRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "delete request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve delete request")
	}

	if h.notifier != nil {
		go h.notifier.NotifyDeleteRequestResolved(context.Background(), req, true, admin)
	}

	return jsonSuccess(c, fiber.Map{"message": "delete request approved, item moved to trash"})
}

// Reject removes the request with no effect on the referenced item.
func (h *DeleteRequestHandler) Reject(c fiber.Ctx) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.db.GetDeleteRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrDeleteRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "delete request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch delete request")
	}

	if err := h.db.RejectDeleteRequest(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrDeleteRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "delete request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject delete request")
	}

	if h.notifier != nil {
		go h.notifier.NotifyDeleteRequestResolved(context.Background(), req, false, admin)
	}

	return jsonSuccess(c, fiber.Map{"message": "delete request rejected"})
}
