package render

import (
	"strings"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// DefaultChunkRows is the default HTML row-chunk size.
const DefaultChunkRows = 256

// Options configures rendering behavior.
type Options struct {
	// ChunkRows bounds the number of data rows per HTML table fragment.
	// Zero means unbounded (one fragment per sheet).
	ChunkRows int
	// IncludeEmptyRows keeps rows whose cells are all absent or
	// whitespace-only.
	IncludeEmptyRows bool
	// PreserveStyles emits per-cell inline style attributes (HTML only).
	PreserveStyles bool
	// CleanIllegalChars strips control characters from cell text.
	CleanIllegalChars bool
	// ShowFormulas renders formula text instead of cached results.
	ShowFormulas bool
}

// DefaultOptions returns rendering defaults.
func DefaultOptions() Options {
	return Options{
		ChunkRows:         DefaultChunkRows,
		CleanIllegalChars: true,
	}
}

// clean applies the illegal-character filter and trims surrounding space.
func (o Options) clean(s string) string {
	if o.CleanIllegalChars {
		s = stripIllegalChars(s)
	}
	return strings.TrimSpace(s)
}

// genericSheetNames are default names that add no information as headings.
var genericSheetNames = map[string]bool{
	"sheet":  true,
	"sheet1": true,
	"data":   true,
}

// isGenericSheetName reports whether a sheet name is a throwaway default.
func isGenericSheetName(name string) bool {
	return genericSheetNames[strings.ToLower(name)]
}

// WorkbookMetadata summarizes a workbook for the result-packaging layer.
func WorkbookMetadata(wb *models.Workbook) models.Metadata {
	md := models.Metadata{
		Sheets:     len(wb.Sheets),
		SheetNames: wb.SheetNames(),
	}
	for _, sheet := range wb.Sheets {
		md.TotalRows += sheet.MaxRow
		if sheet.MaxCol > md.MaxCols {
			md.MaxCols = sheet.MaxCol
		}
		md.MergedCells += len(sheet.Merged)
	}
	return md
}
