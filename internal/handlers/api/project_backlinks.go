package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkledger/internal/db"
	"linkledger/internal/email"
	"linkledger/internal/middleware"
	"linkledger/internal/models"
	"linkledger/internal/validation"
)

// ProjectBacklinkHandler handles backlinks stored under a project.
type ProjectBacklinkHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewProjectBacklinkHandler creates a new project backlink handler.
func NewProjectBacklinkHandler(database *db.DB, notifier *email.Notifier) *ProjectBacklinkHandler {
	return &ProjectBacklinkHandler{db: database, notifier: notifier}
}

func (h *ProjectBacklinkHandler) liveProject(c fiber.Ctx) (*models.Project, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.db.GetProjectByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return nil, jsonError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}
	if project.IsDeleted {
		return nil, jsonError(c, fiber.StatusNotFound, "project not found")
	}
	return project, nil
}

// List returns a project's backlinks grouped by category. Every category
// appears in the result, empty ones included.
func (h *ProjectBacklinkHandler) List(c fiber.Ctx) error {
	project, errResp := h.liveProject(c)
	if project == nil {
		return errResp
	}

	grouped, err := h.db.GetProjectBacklinks(c.Context(), project.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlinks")
	}
	return jsonSuccess(c, grouped)
}

// Create adds a backlink under a project category.
func (h *ProjectBacklinkHandler) Create(c fiber.Ctx) error {
	project, errResp := h.liveProject(c)
	if project == nil {
		return errResp
	}

	var body struct {
		Category  string `json:"category"`
		Date      string `json:"date"`
		Website   string `json:"website"`
		DA        string `json:"da"`
		SpamScore string `json:"spam_score"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		Link      string `json:"link"`
		Notes     string `json:"notes"`
		GlobalID  string `json:"global_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, ok := models.CanonicalCategory(body.Category)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}

	body.Website = validation.NormalizeWebsite(body.Website)
	if body.Website == "" {
		return jsonError(c, fiber.StatusBadRequest, "website is required")
	}

	if body.Link != "" {
		if valid, msg := validation.ValidateURL(body.Link); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
	}

	backlink := &models.ProjectBacklink{
		ProjectID: project.ID,
		Category:  category,
		Date:      body.Date,
		Website:   body.Website,
		DA:        body.DA,
		SpamScore: body.SpamScore,
		Username:  body.Username,
		Password:  body.Password,
		Link:      body.Link,
		Notes:     body.Notes,
	}

	if body.GlobalID != "" {
		globalID, err := uuid.Parse(body.GlobalID)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid global_id")
		}
		backlink.GlobalID = &globalID
	}

	if err := h.db.CreateProjectBacklink(c.Context(), backlink); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create backlink")
	}

	return jsonSuccess(c, backlink)
}

// Delete moves a project backlink to trash when the caller is an admin; an
// editor's call records a delete request for admin review instead.
func (h *ProjectBacklinkHandler) Delete(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	project, errResp := h.liveProject(c)
	if project == nil {
		return errResp
	}

	backlinkID, err := uuid.Parse(c.Params("backlinkID"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid backlink id")
	}

	backlink, err := h.db.GetProjectBacklinkByID(c.Context(), backlinkID)
	if err != nil {
		if errors.Is(err, db.ErrProjectBacklinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "backlink not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlink")
	}
	if backlink.ProjectID != project.ID {
		return jsonError(c, fiber.StatusNotFound, "backlink not found")
	}

	if user.IsAdmin() {
		if err := h.db.MoveProjectBacklinkToTrash(c.Context(), backlinkID); err != nil {
			if errors.Is(err, db.ErrProjectBacklinkNotFound) {
				return jsonError(c, fiber.StatusNotFound, "backlink not found")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to delete backlink")
		}
		return jsonSuccess(c, fiber.Map{
			"deleted": true,
			"message": "backlink moved to trash",
		})
	}

	snapshot, err := json.Marshal(backlink)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to snapshot backlink")
	}

	req := &models.DeleteRequest{
		Type:        models.DeleteTypeBacklink,
		ItemID:      backlinkID,
		ProjectID:   &project.ID,
		Category:    &backlink.Category,
		RequestedBy: &user.ID,
		Snapshot:    snapshot,
	}
	if err := h.db.CreateDeleteRequest(c.Context(), req); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create delete request")
	}

	req.RequesterName = user.Name
	req.RequesterEmail = user.Email
	req.ProjectTitle = project.Title
	if h.notifier != nil {
		go h.notifier.NotifyDeleteRequestCreated(context.Background(), req)
	}

	return jsonSuccess(c, fiber.Map{
		"deleted": false,
		"pending": true,
		"message": "delete request submitted for admin approval",
	})
}
