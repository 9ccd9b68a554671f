package models

// Coord identifies a cell by 1-based row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Sheet is a dense logical grid bounded by MaxRow x MaxCol. Cells are stored
// sparsely: a missing entry is an absent cell, which is distinct from a cell
// holding an empty string.
type Sheet struct {
	// Name is the sheet name, unique within the workbook.
	Name string `json:"name"`
	// MaxRow is the bottom grid bound (1-based, inclusive).
	MaxRow int `json:"max_row"`
	// MaxCol is the right grid bound (1-based, inclusive).
	MaxCol int `json:"max_col"`
	// Cells maps coordinates to populated cells.
	Cells map[Coord]*Cell `json:"-"`
	// Merged is the ordered set of merged regions.
	Merged []MergedRegion `json:"merged,omitempty"`
	// ImageCount is the number of embedded images.
	ImageCount int `json:"image_count"`
	// ChartCount is the number of embedded charts.
	ChartCount int `json:"chart_count"`
	// PivotTableCount is the number of embedded pivot tables.
	PivotTableCount int `json:"pivot_table_count"`
}

// NewSheet returns an empty sheet with the given name.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, Cells: make(map[Coord]*Cell)}
}

// Cell returns the cell at the 1-based coordinate, or nil when absent.
func (s *Sheet) Cell(row, col int) *Cell {
	return s.Cells[Coord{Row: row, Col: col}]
}

// SetCell places a cell and grows the grid bounds to cover it.
func (s *Sheet) SetCell(row, col int, c *Cell) {
	if row < 1 || col < 1 {
		return
	}
	c.Row, c.Col = row, col
	s.Cells[Coord{Row: row, Col: col}] = c
	if row > s.MaxRow {
		s.MaxRow = row
	}
	if col > s.MaxCol {
		s.MaxCol = col
	}
}

// AddMergedRegion appends a merged region and grows the grid bounds to cover
// it. Degenerate single-cell regions are ignored.
func (s *Sheet) AddMergedRegion(r MergedRegion) {
	if r.IsDegenerate() {
		return
	}
	s.Merged = append(s.Merged, r)
	if r.MaxRow > s.MaxRow {
		s.MaxRow = r.MaxRow
	}
	if r.MaxCol > s.MaxCol {
		s.MaxCol = r.MaxCol
	}
}

// RowIsEmpty reports whether every cell in the 1-based row is absent or
// whitespace-only.
func (s *Sheet) RowIsEmpty(row int) bool {
	for col := 1; col <= s.MaxCol; col++ {
		if c := s.Cell(row, col); c != nil && !c.IsEmpty() {
			return false
		}
	}
	return true
}
