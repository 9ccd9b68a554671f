package models

// ShapeKind classifies free-floating drawing text.
type ShapeKind string

const (
	// ShapeTextbox marks text boxes.
	ShapeTextbox ShapeKind = "textbox"
	// ShapeOther marks any other shape carrying text.
	ShapeOther ShapeKind = "shape"
)

// ShapeText is text recovered from a drawing part. It is not anchored to any
// cell and is surfaced as additive metadata, never merged into the grid.
type ShapeText struct {
	// Kind is the shape classification.
	Kind ShapeKind `json:"type"`
	// Text is the concatenated text of all runs under the shape node.
	Text string `json:"text"`
	// Source is the drawing part the text came from.
	Source string `json:"source"`
}

// RichTextIndex recovers per-run formatting that the tabular loaders lose.
// It is built once per source archive and scoped to a single render pass.
type RichTextIndex struct {
	// Strings maps shared-string identifiers to their ordered runs.
	Strings map[int][]RichTextRun `json:"strings"`
	// SheetCells maps sheet name to coordinate-to-identifier mappings,
	// restricted to string-typed cells.
	SheetCells map[string]map[Coord]int `json:"sheet_cells"`
}

// RunsAt returns the runs behind a string-typed cell, or nil when the cell is
// not covered by the index.
func (ix *RichTextIndex) RunsAt(sheet string, row, col int) []RichTextRun {
	if ix == nil {
		return nil
	}
	cells, ok := ix.SheetCells[sheet]
	if !ok {
		return nil
	}
	id, ok := cells[Coord{Row: row, Col: col}]
	if !ok {
		return nil
	}
	return ix.Strings[id]
}
