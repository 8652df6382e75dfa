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

// BacklinkHandler handles global backlink operations via JSON API.
type BacklinkHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewBacklinkHandler creates a new API backlink handler.
func NewBacklinkHandler(database *db.DB, notifier *email.Notifier) *BacklinkHandler {
	return &BacklinkHandler{db: database, notifier: notifier}
}

// List returns live global backlinks, optionally filtered by a category tab
// and a website search term.
func (h *BacklinkHandler) List(c fiber.Ctx) error {
	category := c.Query("category", "")
	if category != "" && !models.IsCategory(category) {
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}

	links, err := h.db.SearchBacklinks(c.Context(), category, c.Query("q", ""))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlinks")
	}
	return jsonSuccess(c, links)
}

// Get returns a single global backlink by ID.
func (h *BacklinkHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid backlink id")
	}

	link, err := h.db.GetBacklinkByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrBacklinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "backlink not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlink")
	}
	if link.Deleted {
		return jsonError(c, fiber.StatusNotFound, "backlink not found")
	}

	return jsonSuccess(c, link)
}

type backlinkBody struct {
	Website      string   `json:"website"`
	Categories   []string `json:"categories"`
	DA           string   `json:"da"`
	SpamScore    string   `json:"spam_score"`
	DR           string   `json:"dr"`
	Traffic      string   `json:"traffic"`
	Email        string   `json:"email"`
	Price        string   `json:"price"`
	Niche        string   `json:"niche"`
	PublishedURL string   `json:"published_url"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
}

func (b *backlinkBody) canonicalCategories() ([]string, bool) {
	seen := make(map[string]bool, len(b.Categories))
	var out []string
	for _, token := range b.Categories {
		canonical, ok := models.CanonicalCategory(token)
		if !ok {
			return nil, false
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out, true
}

// Create creates a new global backlink after the duplicate check.
func (h *BacklinkHandler) Create(c fiber.Ctx) error {
	var body backlinkBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Website = validation.NormalizeWebsite(body.Website)
	if body.Website == "" {
		return jsonError(c, fiber.StatusBadRequest, "website is required")
	}

	categories, ok := body.canonicalCategories()
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}
	if len(categories) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "at least one category is required")
	}

	if body.Status != "" && !models.ValidStatus(body.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}

	exists, err := h.db.BacklinkExists(c.Context(), body.Website, categories)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to check for duplicates")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, db.ErrDuplicateBacklink.Error())
	}

	link := &models.Backlink{
		Website:      body.Website,
		Categories:   categories,
		DA:           body.DA,
		SpamScore:    body.SpamScore,
		DR:           body.DR,
		Traffic:      body.Traffic,
		Email:        body.Email,
		Price:        body.Price,
		Niche:        body.Niche,
		PublishedURL: body.PublishedURL,
		Status:       body.Status,
		Notes:        body.Notes,
	}
	if err := h.db.CreateBacklink(c.Context(), link); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create backlink")
	}

	return jsonSuccess(c, link)
}

// Update updates a global backlink's fields.
func (h *BacklinkHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid backlink id")
	}

	link, err := h.db.GetBacklinkByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrBacklinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "backlink not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlink")
	}
	if link.Deleted {
		return jsonError(c, fiber.StatusNotFound, "backlink not found")
	}

	var body backlinkBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Website = validation.NormalizeWebsite(body.Website)
	if body.Website == "" {
		return jsonError(c, fiber.StatusBadRequest, "website is required")
	}

	categories, ok := body.canonicalCategories()
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}
	if len(categories) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "at least one category is required")
	}

	if body.Status != "" && !models.ValidStatus(body.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}
	if body.Status == "" {
		body.Status = link.Status
	}

	link.Website = body.Website
	link.Categories = categories
	link.DA = body.DA
	link.SpamScore = body.SpamScore
	link.DR = body.DR
	link.Traffic = body.Traffic
	link.Email = body.Email
	link.Price = body.Price
	link.Niche = body.Niche
	link.PublishedURL = body.PublishedURL
	link.Status = body.Status
	link.Notes = body.Notes

	if err := h.db.UpdateBacklink(c.Context(), link); err != nil {
		if errors.Is(err, db.ErrBacklinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "backlink not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update backlink")
	}

	return jsonSuccess(c, link)
}

// Delete moves a global backlink to trash when the caller is an admin; an
// editor's call records a delete request for admin review instead.
func (h *BacklinkHandler) Delete(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid backlink id")
	}

	link, err := h.db.GetBacklinkByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrBacklinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "backlink not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlink")
	}
	if link.Deleted {
		return jsonError(c, fiber.StatusNotFound, "backlink not found")
	}

	if user.IsAdmin() {
		if err := h.db.MoveBacklinkToTrash(c.Context(), id); err != nil {
			if errors.Is(err, db.ErrBacklinkNotFound) {
				return jsonError(c, fiber.StatusNotFound, "backlink not found")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to delete backlink")
		}
		return jsonSuccess(c, fiber.Map{
			"deleted": true,
			"message": "backlink moved to trash",
		})
	}

	snapshot, err := json.Marshal(link)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to snapshot backlink")
	}

	req := &models.DeleteRequest{
		Type:        models.DeleteTypeBacklink,
		ItemID:      id,
		RequestedBy: &user.ID,
		Snapshot:    snapshot,
	}
	if err := h.db.CreateDeleteRequest(c.Context(), req); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create delete request")
	}

	req.RequesterName = user.Name
	req.RequesterEmail = user.Email
	if h.notifier != nil {
		go h.notifier.NotifyDeleteRequestCreated(context.Background(), req)
	}

	return jsonSuccess(c, fiber.Map{
		"deleted": false,
		"pending": true,
		"message": "delete request submitted for admin approval",
	})
}
