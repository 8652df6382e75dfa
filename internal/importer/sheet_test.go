package importer

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"Website,DA,SpamScore,Notes,Status,Categories",
		"example.com,40,2,first,completed,Guest Posting",
		"other.com,10,1,,,\"Guest Posting, Micro Blogging\"",
		"",
		"short.com,5",
	}, "\n")

	sheet, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if len(sheet.Headers) != 6 {
		t.Fatalf("len(headers) = %d, want 6", len(sheet.Headers))
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (blank line dropped)", len(sheet.Rows))
	}

	if sheet.Rows[0]["Website"] != "example.com" {
		t.Errorf("row 0 Website = %q", sheet.Rows[0]["Website"])
	}
	if sheet.Rows[1]["Categories"] != "Guest Posting, Micro Blogging" {
		t.Errorf("row 1 Categories = %q", sheet.Rows[1]["Categories"])
	}

	// short row: remaining cells present as ""
	if sheet.Rows[2]["Website"] != "short.com" {
		t.Errorf("row 2 Website = %q", sheet.Rows[2]["Website"])
	}
	if got, ok := sheet.Rows[2]["Categories"]; !ok || got != "" {
		t.Errorf("row 2 Categories = %q (present %v), want empty cell", got, ok)
	}
}

func TestParseCSV_EmptyInput(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("ParseCSV(empty) error = nil, want ErrEmptySheet")
	}
}

func TestParse_ChoosesCodecByExtension(t *testing.T) {
	input := "Website,DA,SpamScore,Notes,Status,Categories\nexample.com,1,1,,,Guest Posting\n"

	sheet, err := Parse("backlinks.CSV", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse(csv) error = %v", err)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(sheet.Rows))
	}
}

func TestParseXLSX_RoundTrip(t *testing.T) {
	// Build a workbook via the exporter, then read it back.
	links := sampleBacklinks()

	buf, err := ExportXLSX(links)
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	sheet, err := ParseXLSX(buf)
	if err != nil {
		t.Fatalf("ParseXLSX() error = %v", err)
	}

	if err := ValidateHeader(sheet.Headers); err != nil {
		t.Fatalf("exported header fails import validation: %v", err)
	}
	if len(sheet.Rows) != len(links) {
		t.Fatalf("len(rows) = %d, want %d", len(sheet.Rows), len(links))
	}
	if sheet.Rows[0]["Website"] != "example.com" {
		t.Errorf("row 0 Website = %q", sheet.Rows[0]["Website"])
	}
	if sheet.Rows[0]["Categories"] != "Guest Posting, Micro Blogging" {
		t.Errorf("row 0 Categories = %q", sheet.Rows[0]["Categories"])
	}
}
