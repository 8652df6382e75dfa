// Package importer implements the spreadsheet import reconciliation: header
// validation, per-row normalization, and duplicate detection against both
// the batch itself and the live backlink set.
package importer

import (
	"fmt"
	"strings"

	"linkledger/internal/models"
	"linkledger/internal/validation"
)

// RequiredColumns must all be present in the header row, spelled exactly.
var RequiredColumns = []string{"Website", "DA", "SpamScore", "Notes", "Status", "Categories"}

// OptionalColumns are populated when present, defaulted to "" otherwise.
var OptionalColumns = []string{"DR", "Traffic", "Email", "Price", "Niche", "PublishedURL"}

// Skip reasons reported per rejected row.
const (
	ReasonWebsiteMissing    = "Website missing"
	ReasonCategoriesMissing = "Categories missing"
	ReasonInvalidCategories = "Invalid categories"
	ReasonDuplicateInFile   = "Duplicate in same file"
	ReasonAlreadyExists     = "Already exists in database"
	ReasonInsertFailed      = "Insert failed"
)

// SkipEntry records why one row was not imported.
type SkipEntry struct {
	Website string `json:"website"`
	Reason  string `json:"reason"`
}

// Report summarizes an import batch.
type Report struct {
	Added   int         `json:"added"`
	Skipped int         `json:"skipped"`
	Skips   []SkipEntry `json:"skips"`
}

// Skip records a skipped row in the report.
func (r *Report) Skip(website, reason string) {
	r.Skipped++
	r.Skips = append(r.Skips, SkipEntry{Website: website, Reason: reason})
}

// MissingColumnsError aborts an entire import: no partial import happens
// when required headers are absent.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// ValidateHeader checks the header row for all required column names,
// case-sensitive and verbatim.
func ValidateHeader(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Reconcile validates each row in input order against the batch and the
// preloaded live backlink set, returning the backlinks to insert and a
// report with a reason for every skip. Duplicate detection is exact-match
// on the normalized website plus category overlap; which project a scoped
// copy belongs to is never consulted.
func Reconcile(rows []Row, existing []models.Backlink) ([]models.Backlink, *Report) {
	report := &Report{}
	var accepted []models.Backlink
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		rawWebsite := strings.TrimSpace(row["Website"])
		if rawWebsite == "" {
			report.Skip("", ReasonWebsiteMissing)
			continue
		}

		website := validation.NormalizeWebsite(rawWebsite)

		if strings.TrimSpace(row["Categories"]) == "" {
			report.Skip(website, ReasonCategoriesMissing)
			continue
		}

		categories := matchCategories(row["Categories"])
		if len(categories) == 0 {
			report.Skip(website, ReasonInvalidCategories)
			continue
		}

		if seen[website] {
			report.Skip(website, ReasonDuplicateInFile)
			continue
		}

		if existsInSet(existing, website, categories) {
			report.Skip(website, ReasonAlreadyExists)
			continue
		}

		accepted = append(accepted, models.Backlink{
			Website:      website,
			Categories:   categories,
			DA:           row["DA"],
			SpamScore:    row["SpamScore"],
			DR:           row["DR"],
			Traffic:      row["Traffic"],
			Email:        row["Email"],
			Price:        row["Price"],
			Niche:        row["Niche"],
			PublishedURL: row["PublishedURL"],
			Status:       normalizeStatus(row["Status"]),
			Notes:        row["Notes"],
		})
		seen[website] = true
		report.Added++
	}

	return accepted, report
}

// matchCategories splits a comma-separated cell and keeps the tokens that
// match the fixed vocabulary, in canonical display form. Unmatched tokens
// are discarded, repeated ones collapsed.
func matchCategories(cell string) []string {
	var matched []string
	have := make(map[string]bool, len(models.Categories))

	for _, token := range strings.Split(cell, ",") {
		canonical, ok := models.CanonicalCategory(token)
		if !ok || have[canonical] {
			continue
		}
		matched = append(matched, canonical)
		have[canonical] = true
	}
	return matched
}

func existsInSet(existing []models.Backlink, website string, categories []string) bool {
	for i := range existing {
		if existing[i].Website == website && existing[i].SharesCategory(categories) {
			return true
		}
	}
	return false
}

// normalizeStatus maps a status cell to a workflow status; imported rows
// default to under_review, matching the original import behavior.
func normalizeStatus(cell string) string {
	status := strings.ToLower(strings.TrimSpace(cell))
	if models.ValidStatus(status) {
		return status
	}
	return models.StatusUnderReview
}
