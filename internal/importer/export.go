package importer

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"linkledger/internal/models"
)

// ExportColumns is the column order of exported spreadsheets. It is a
// superset of the import headers, so an exported file round-trips through
// the importer.
var ExportColumns = []string{
	"Website", "DA", "SpamScore", "DR", "Traffic", "Email",
	"Price", "Niche", "PublishedURL", "Status", "Notes", "Categories",
}

const exportSheetName = "Backlinks"

// ExportXLSX writes the given backlinks to an XLSX workbook. Categories
// are joined with ", " in both directions.
func ExportXLSX(links []models.Backlink) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	header := make([]any, len(ExportColumns))
	for i, col := range ExportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i := range links {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(&links[i])
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func exportRow(b *models.Backlink) []any {
	return []any{
		b.Website,
		b.DA,
		b.SpamScore,
		b.DR,
		b.Traffic,
		b.Email,
		b.Price,
		b.Niche,
		b.PublishedURL,
		b.Status,
		b.Notes,
		strings.Join(b.Categories, ", "),
	}
}
