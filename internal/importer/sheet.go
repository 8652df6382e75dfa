package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row keyed by header name. Cells absent from a short row
// are present in the map as "".
type Row map[string]string

// Sheet is a parsed spreadsheet: the header row plus data rows.
type Sheet struct {
	Headers []string
	Rows    []Row
}

var ErrEmptySheet = errors.New("spreadsheet has no header row")

// Parse reads a spreadsheet in XLSX or CSV form, chosen by file extension.
func Parse(filename string, r io.Reader) (*Sheet, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return ParseCSV(r)
	}
	return ParseXLSX(r)
}

// ParseXLSX reads the first worksheet of an XLSX file.
func ParseXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	return fromRecords(rows)
}

// ParseCSV reads a comma-separated file with a header row.
func ParseCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows allowed; short cells default to ""

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return fromRecords(records)
}

func fromRecords(records [][]string) (*Sheet, error) {
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &Sheet{Headers: headers}
	for _, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
