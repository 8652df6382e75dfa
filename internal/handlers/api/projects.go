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

// ProjectHandler handles project CRUD operations via JSON API.
type ProjectHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewProjectHandler creates a new API project handler.
func NewProjectHandler(database *db.DB, notifier *email.Notifier) *ProjectHandler {
	return &ProjectHandler{db: database, notifier: notifier}
}

// List returns live projects, optionally filtered by a search term.
func (h *ProjectHandler) List(c fiber.Ctx) error {
	projects, err := h.db.GetProjects(c.Context(), c.Query("q", ""))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch projects")
	}
	return jsonSuccess(c, projects)
}

// Get returns a single project by ID.
func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.db.GetProjectByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}
	if project.IsDeleted {
		return jsonError(c, fiber.StatusNotFound, "project not found")
	}

	return jsonSuccess(c, project)
}

// Create creates a new project.
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Title       string `json:"title"`
		Website     string `json:"website"`
		WebsiteURL  string `json:"website_url"`
		Description string `json:"description"`
		Keyword     string `json:"keyword"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Title == "" || body.Website == "" {
		return jsonError(c, fiber.StatusBadRequest, "title and website are required")
	}

	if body.WebsiteURL != "" {
		if valid, msg := validation.ValidateURL(body.WebsiteURL); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
	}

	project := &models.Project{
		Title:       body.Title,
		Website:     validation.NormalizeWebsite(body.Website),
		WebsiteURL:  body.WebsiteURL,
		Description: body.Description,
		Keyword:     body.Keyword,
		CreatedBy:   &user.ID,
	}

	if err := h.db.CreateProject(c.Context(), project); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create project")
	}

	return jsonSuccess(c, project)
}

// Update updates a project's editable fields, contact info included.
func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.db.GetProjectByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}
	if project.IsDeleted {
		return jsonError(c, fiber.StatusNotFound, "project not found")
	}

	var body struct {
		Title       string `json:"title"`
		Website     string `json:"website"`
		WebsiteURL  string `json:"website_url"`
		Description string `json:"description"`
		Keyword     string `json:"keyword"`
		Email       string `json:"email"`
		OfficeEmail string `json:"office_email"`
		Phone       string `json:"phone"`
		Location    string `json:"location"`
		ZipCode     string `json:"zip_code"`
		Facebook    string `json:"facebook"`
		Instagram   string `json:"instagram"`
		Twitter     string `json:"twitter"`
		LinkedIn    string `json:"linkedin"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Title == "" || body.Website == "" {
		return jsonError(c, fiber.StatusBadRequest, "title and website are required")
	}

	if body.WebsiteURL != "" {
		if valid, msg := validation.ValidateURL(body.WebsiteURL); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
	}

	project.Title = body.Title
	project.Website = validation.NormalizeWebsite(body.Website)
	project.WebsiteURL = body.WebsiteURL
	project.Description = body.Description
	project.Keyword = body.Keyword
	project.Email = body.Email
	project.OfficeEmail = body.OfficeEmail
	project.Phone = body.Phone
	project.Location = body.Location
	project.ZipCode = body.ZipCode
	project.Facebook = body.Facebook
	project.Instagram = body.Instagram
	project.Twitter = body.Twitter
	project.LinkedIn = body.LinkedIn

	if err := h.db.UpdateProject(c.Context(), project); err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update project")
	}

	return jsonSuccess(c, project)
}

// Delete moves a project to trash when the caller is an admin; an editor's
// call records a delete request for admin review instead.
func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.db.GetProjectByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}
	if project.IsDeleted {
		return jsonError(c, fiber.StatusNotFound, "project not found")
	}

	if user.IsAdmin() {
		if err := h.db.MoveProjectToTrash(c.Context(), id); err != nil {
			if errors.Is(err, db.ErrProjectNotFound) {
				return jsonError(c, fiber.StatusNotFound, "project not found")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to delete project")
		}
		return jsonSuccess(c, fiber.Map{
			"deleted": true,
			"message": "project moved to trash",
		})
	}

	snapshot, err := json.Marshal(project)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to snapshot project")
	}

	req := &models.DeleteRequest{
		Type:        models.DeleteTypeProject,
		ItemID:      id,
		ProjectID:   &id,
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
