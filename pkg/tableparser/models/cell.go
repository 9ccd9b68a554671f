package models

import (
	"strconv"
	"strings"
)

// ValueKind classifies a cell value variant.
type ValueKind int

const (
	// KindAbsent marks a cell slot with no value at all.
	KindAbsent ValueKind = iota
	// KindString marks a plain text value.
	KindString
	// KindNumber marks a numeric value.
	KindNumber
	// KindBool marks a boolean value.
	KindBool
	// KindFormula marks a formula with a cached result.
	KindFormula
)

// VertAlign classifies a text run as normal, superscript or subscript.
type VertAlign string

const (
	// VertAlignNone is normal script position.
	VertAlignNone VertAlign = ""
	// VertAlignSuperscript raises the run above the baseline.
	VertAlignSuperscript VertAlign = "superscript"
	// VertAlignSubscript lowers the run below the baseline.
	VertAlignSubscript VertAlign = "subscript"
)

// RichTextRun is one formatted fragment of a cell value.
type RichTextRun struct {
	// Text is the fragment content.
	Text string `json:"text"`
	// VertAlign is the script position of the fragment.
	VertAlign VertAlign `json:"vert_align,omitempty"`
	// Bold marks a bold fragment.
	Bold bool `json:"bold,omitempty"`
	// Italic marks an italic fragment.
	Italic bool `json:"italic,omitempty"`
}

// CellStyle carries display attributes extracted at load time.
type CellStyle struct {
	// Bold marks bold font weight.
	Bold bool `json:"bold,omitempty"`
	// Italic marks italic font style.
	Italic bool `json:"italic,omitempty"`
	// Underline marks an underlined cell.
	Underline bool `json:"underline,omitempty"`
	// FontSize is the font size in points (0 if unset).
	FontSize float64 `json:"font_size,omitempty"`
	// FontColor is the foreground color as "#RRGGBB" ("" if unset).
	FontColor string `json:"font_color,omitempty"`
	// FillColor is the background fill as "#RRGGBB" ("" if unset).
	FillColor string `json:"fill_color,omitempty"`
	// VertAlign is the whole-cell script position.
	VertAlign VertAlign `json:"vert_align,omitempty"`
}

// IsZero reports whether no style attribute is set.
func (cs CellStyle) IsZero() bool {
	return cs == CellStyle{}
}

// Cell is one populated grid slot (1-based row and column).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
	// Kind selects the value variant.
	Kind ValueKind `json:"kind"`
	// Str holds the value for KindString, and the cached display value for
	// KindNumber and KindBool as produced by the loader.
	Str string `json:"str,omitempty"`
	// Num holds the parsed numeric value for KindNumber.
	Num float64 `json:"num,omitempty"`
	// Bool holds the value for KindBool.
	Bool bool `json:"bool,omitempty"`
	// Formula holds the formula text for KindFormula (leading "=" included).
	Formula string `json:"formula,omitempty"`
	// Cached holds the cached formula result for KindFormula.
	Cached string `json:"cached,omitempty"`
	// Style carries display attributes.
	Style CellStyle `json:"style,omitempty"`
	// Hyperlink reports whether the cell carries a hyperlink.
	Hyperlink bool `json:"hyperlink,omitempty"`
	// RichRuns holds per-run formatting when the cell value is rich text.
	RichRuns []RichTextRun `json:"rich_runs,omitempty"`
}

// NewStringCell builds a string cell, parsing numeric text into KindNumber
// the way tabular loaders surface values.
func NewStringCell(value string) *Cell {
	if value == "" {
		return &Cell{Kind: KindString}
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		n, _ := strconv.ParseFloat(value, 64)
		return &Cell{Kind: KindNumber, Str: value, Num: n}
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return &Cell{Kind: KindNumber, Str: value, Num: n}
	}
	return &Cell{Kind: KindString, Str: value}
}

// Value returns the display text of the cell: the cached result for formulas,
// the stored text otherwise. Absent cells yield "".
func (c *Cell) Value() string {
	if c == nil {
		return ""
	}
	switch c.Kind {
	case KindAbsent:
		return ""
	case KindFormula:
		return c.Cached
	case KindBool:
		if c.Str != "" {
			return c.Str
		}
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return c.Str
	}
}

// IsEmpty reports whether the cell is absent or whitespace-only.
func (c *Cell) IsEmpty() bool {
	if c == nil || c.Kind == KindAbsent {
		return true
	}
	return strings.TrimSpace(c.Value()) == ""
}

// HasRichRuns reports whether the cell carries non-trivial run formatting:
// more than one run, or any run with a script position.
func (c *Cell) HasRichRuns() bool {
	if c == nil {
		return false
	}
	if len(c.RichRuns) > 1 {
		return true
	}
	for _, r := range c.RichRuns {
		if r.VertAlign != VertAlignNone {
			return true
		}
	}
	return false
}
