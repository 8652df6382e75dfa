package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"linkledger/internal/db"
	"linkledger/internal/importer"
	"linkledger/internal/models"
)

// ExportHandler serves backlink exports as XLSX downloads.
type ExportHandler struct {
	db *db.DB
}

// NewExportHandler creates a new export handler.
func NewExportHandler(database *db.DB) *ExportHandler {
	return &ExportHandler{db: database}
}

// Download exports live global backlinks, honoring the same category and
// search filters as the listing. The output header round-trips through the
// importer unchanged.
func (h *ExportHandler) Download(c fiber.Ctx) error {
	category := c.Query("category", "")
	if category != "" && !models.IsCategory(category) {
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}

	links, err := h.db.SearchBacklinks(c.Context(), category, c.Query("q", ""))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch backlinks")
	}

	buf, err := importer.ExportXLSX(links)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	filename := fmt.Sprintf("backlinks-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
