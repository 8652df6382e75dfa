package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkledger/internal/db"
	"linkledger/internal/importer"
	"linkledger/internal/metrics"
)

// ImportHandler handles spreadsheet imports into the global backlink pool.
type ImportHandler struct {
	db *db.DB
}

// NewImportHandler creates a new import handler.
func NewImportHandler(database *db.DB) *ImportHandler {
	return &ImportHandler{db: database}
}

// Upload imports an uploaded XLSX or CSV file. Missing required headers
// abort the whole batch; otherwise every row is resolved to added or
// skipped-with-reason and the full report is returned.
func (h *ImportHandler) Upload(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	sheet, err := importer.Parse(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, importer.ErrEmptySheet) {
			return jsonError(c, fiber.StatusBadRequest, "spreadsheet has no header row")
		}
		return jsonError(c, fiber.StatusBadRequest, "failed to parse spreadsheet")
	}

	if err := importer.ValidateHeader(sheet.Headers); err != nil {
		var missing *importer.MissingColumnsError
		if errors.As(err, &missing) {
			return jsonError(c, fiber.StatusBadRequest, missing.Error())
		}
		return jsonError(c, fiber.StatusBadRequest, "invalid header row")
	}

	existing, err := h.db.GetLiveBacklinks(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load existing backlinks")
	}

	accepted, report := importer.Reconcile(sheet.Rows, existing)

	// Reconciliation already settled the batch; a row that fails to insert
	// moves from added to skipped rather than failing the import.
	inserted := 0
	for i := range accepted {
		if err := h.db.CreateBacklink(c.Context(), &accepted[i]); err != nil {
			report.Added--
			report.Skip(accepted[i].Website, importer.ReasonInsertFailed)
			continue
		}
		inserted++
	}

	metrics.RecordImportAdded(inserted)
	for _, skip := range report.Skips {
		metrics.RecordImportSkipped(skip.Reason)
	}

	return jsonSuccess(c, report)
}
