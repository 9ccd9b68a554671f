package models

import "fmt"

// MergedRegion is an inclusive, 1-based rectangular merge. MinRow <= MaxRow
// and MinCol <= MaxCol always hold for regions built by the loaders.
type MergedRegion struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// RowSpan returns the number of rows the region covers.
func (r MergedRegion) RowSpan() int { return r.MaxRow - r.MinRow + 1 }

// ColSpan returns the number of columns the region covers.
func (r MergedRegion) ColSpan() int { return r.MaxCol - r.MinCol + 1 }

// Area returns the number of cells the region covers.
func (r MergedRegion) Area() int { return r.RowSpan() * r.ColSpan() }

// Contains reports whether the 1-based coordinate lies inside the region.
func (r MergedRegion) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// IsAnchor reports whether the coordinate is the top-left corner of the
// region, the only cell of a merge that is ever rendered.
func (r MergedRegion) IsAnchor(row, col int) bool {
	return row == r.MinRow && col == r.MinCol
}

// IsDegenerate reports whether the region covers a single cell.
func (r MergedRegion) IsDegenerate() bool {
	return r.MinRow == r.MaxRow && r.MinCol == r.MaxCol
}

// Overlaps reports whether two regions share at least one cell.
func (r MergedRegion) Overlaps(o MergedRegion) bool {
	return r.MinRow <= o.MaxRow && o.MinRow <= r.MaxRow &&
		r.MinCol <= o.MaxCol && o.MinCol <= r.MaxCol
}

func (r MergedRegion) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.MinRow, r.MinCol, r.MaxRow, r.MaxCol)
}

// ValidateMergedRegions rejects malformed merge geometry: inverted bounds,
// degenerate single-cell regions, and overlapping regions. Which anchor wins
// under overlap is undefined, so overlap fails fast instead of being silently
// resolved.
func ValidateMergedRegions(regions []MergedRegion) error {
	for i, r := range regions {
		if r.MinRow > r.MaxRow || r.MinCol > r.MaxCol {
			return fmt.Errorf("merged region %s has inverted bounds", r)
		}
		if r.IsDegenerate() {
			return fmt.Errorf("merged region %s is a single cell", r)
		}
		for _, o := range regions[i+1:] {
			if r.Overlaps(o) {
				return fmt.Errorf("merged regions %s and %s overlap", r, o)
			}
		}
	}
	return nil
}
