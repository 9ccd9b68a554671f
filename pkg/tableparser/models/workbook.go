// Package models defines data structures for table parsing.
package models

// Workbook is the normalized in-memory representation populated by a loader.
// Sheet order is significant. The workbook owns its sheets exclusively and is
// read-only once constructed.
type Workbook struct {
	// Sheets is the ordered list of sheets.
	Sheets []*Sheet `json:"sheets"`
	// HasVBA reports whether the workbook carries an embedded macro project.
	HasVBA bool `json:"has_vba"`
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Metadata summarizes a workbook for result packaging.
type Metadata struct {
	// Sheets is the number of sheets.
	Sheets int `json:"sheets"`
	// SheetNames lists sheet names in order.
	SheetNames []string `json:"sheet_names"`
	// TotalRows is the sum of max rows across sheets.
	TotalRows int `json:"total_rows"`
	// MaxCols is the maximum column count across sheets.
	MaxCols int `json:"total_cols"`
	// MergedCells is the total merged region count across sheets.
	MergedCells int `json:"merged_cells_count"`
}
