package loader

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

func TestLoadBytesEmptyInput(t *testing.T) {
	if _, err := LoadBytes(nil, Options{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("LoadBytes(nil) error = %v, expected ErrEmptyInput", err)
	}
}

func TestLoadWorkbook(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Region")
	f.SetCellValue(sheetName, "C1", "Metric")
	f.SetCellValue(sheetName, "A3", "North")
	f.SetCellValue(sheetName, "B3", 100)
	f.SetCellValue(sheetName, "C3", 200.5)
	if err := f.MergeCell(sheetName, "A1", "B2"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := Load(tmpFile, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(wb.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(wb.Sheets))
	}
	sheet := wb.Sheets[0]
	if sheet.Name != sheetName {
		t.Errorf("sheet name = %q, expected %q", sheet.Name, sheetName)
	}
	if wb.HasVBA {
		t.Error("plain workbook reported a macro project")
	}

	if got := sheet.Cell(1, 1).Value(); got != "Region" {
		t.Errorf("A1 = %q, expected Region", got)
	}
	cell := sheet.Cell(3, 2)
	if cell == nil || cell.Kind != models.KindNumber || cell.Num != 100 {
		t.Errorf("B3 = %+v, expected numeric 100", cell)
	}
	if got := sheet.Cell(3, 3).Value(); got != "200.5" {
		t.Errorf("C3 = %q, expected 200.5", got)
	}

	if len(sheet.Merged) != 1 {
		t.Fatalf("expected 1 merged region, got %d", len(sheet.Merged))
	}
	expected := models.MergedRegion{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}
	if sheet.Merged[0] != expected {
		t.Errorf("merged region = %+v, expected %+v", sheet.Merged[0], expected)
	}
}

func TestLoadCSV(t *testing.T) {
	wb, err := LoadBytes([]byte("name,score\nAnn,93\nBob,87.5\n"), Options{})
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}

	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "Data" {
		t.Fatalf("expected single sheet named Data, got %+v", wb.Sheets)
	}
	sheet := wb.Sheets[0]
	if sheet.MaxRow != 3 || sheet.MaxCol != 2 {
		t.Errorf("bounds = (%d, %d), expected (3, 2)", sheet.MaxRow, sheet.MaxCol)
	}
	cell := sheet.Cell(2, 2)
	if cell == nil || cell.Kind != models.KindNumber || cell.Num != 93 {
		t.Errorf("B2 = %+v, expected numeric 93", cell)
	}
}

func TestLoadCSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\nx,y\n")...)
	wb, err := LoadBytes(data, Options{CSVEncoding: "UTF-8"})
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if got := wb.Sheets[0].Cell(1, 1).Value(); got != "a" {
		t.Errorf("A1 = %q, expected BOM stripped", got)
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	wb, err := LoadBytes([]byte("a,b,c\nx\ny,z\n"), Options{})
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	sheet := wb.Sheets[0]
	if sheet.MaxRow != 3 || sheet.MaxCol != 3 {
		t.Errorf("bounds = (%d, %d), expected (3, 3)", sheet.MaxRow, sheet.MaxCol)
	}
}

func TestLoadCSVEmptyRecords(t *testing.T) {
	if _, err := LoadBytes([]byte("\n\n"), Options{}); err == nil {
		t.Error("expected an error for input with no records")
	}
}

func TestDetectEncodingFallback(t *testing.T) {
	// Tiny ambiguous input falls back to UTF-8.
	if got := detectEncoding([]byte("ab")); got == "" {
		t.Errorf("detectEncoding returned empty charset")
	}
}

func TestDecodeCharset(t *testing.T) {
	// GBK-encoded Chinese text decodes to UTF-8.
	gbk := []byte{0xC4, 0xE3, 0xBA, 0xC3}
	decoded, err := decodeCharset(gbk, "GBK")
	if err != nil {
		t.Fatalf("decodeCharset failed: %v", err)
	}
	if string(decoded) != "你好" {
		t.Errorf("decoded = %q, expected 你好", decoded)
	}

	// Unknown charsets pass the bytes through.
	raw := []byte("keep")
	out, err := decodeCharset(raw, "no-such-charset")
	if err != nil || string(out) != "keep" {
		t.Errorf("decodeCharset(unknown) = %q, %v, expected passthrough", out, err)
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"FF0000", "#FF0000"},
		{"FFFF0000", "#FF0000"},
		{"#00ff00", "#00FF00"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeColor(tt.input); got != tt.expected {
			t.Errorf("normalizeColor(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseMergeRange(t *testing.T) {
	tests := []struct {
		start, end string
		expected   models.MergedRegion
		ok         bool
	}{
		{"A1", "B2", models.MergedRegion{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}, true},
		// Inverted ranges normalize.
		{"B2", "A1", models.MergedRegion{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}, true},
		{"bogus", "B2", models.MergedRegion{}, false},
	}

	for _, tt := range tests {
		region, ok := parseMergeRange(tt.start, tt.end)
		if ok != tt.ok || region != tt.expected {
			t.Errorf("parseMergeRange(%q, %q) = %+v, %v, expected %+v, %v",
				tt.start, tt.end, region, ok, tt.expected, tt.ok)
		}
	}
}
