package render

import (
	"html"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// Overlays is optional enrichment recovered straight from the source archive.
// A nil Overlays (or nil fields) degrades to cell-native formatting.
type Overlays struct {
	// RichText recovers shared-string run formatting.
	RichText *models.RichTextIndex
	// Shapes is free-floating drawing text; it is surfaced alongside the
	// output, never rendered into the grid.
	Shapes []models.ShapeText
}

func (o *Overlays) runsAt(sheet string, row, col int) []models.RichTextRun {
	if o == nil {
		return nil
	}
	return o.RichText.RunsAt(sheet, row, col)
}

// cellHTML renders cell content for the HTML path following the content
// precedence: formula display, overlay runs, embedded runs, plain value.
func cellHTML(sheet *models.Sheet, cell *models.Cell, row, col int, opts Options, overlays *Overlays) string {
	if opts.ShowFormulas && cell != nil && cell.Kind == models.KindFormula {
		return "<code>" + html.EscapeString(opts.clean(cell.Formula)) + "</code>"
	}
	if runs := overlays.runsAt(sheet.Name, row, col); len(runs) > 1 {
		return runsToHTML(runs, opts)
	}
	if cell.HasRichRuns() {
		return runsToHTML(cell.RichRuns, opts)
	}
	var value string
	if cell != nil {
		value = cell.Value()
	}
	return scriptsToHTML(opts.clean(value))
}

// cellMarkdown is the Markdown counterpart of cellHTML. It never emits raw
// HTML tags; script runs collapse to ^x^ / ~x~ and bold/italic to
// **x** / *x*.
func cellMarkdown(sheet *models.Sheet, cell *models.Cell, row, col int, opts Options, overlays *Overlays) string {
	if opts.ShowFormulas && cell != nil && cell.Kind == models.KindFormula {
		return "`" + escapeMarkdown(opts.clean(cell.Formula)) + "`"
	}
	if runs := overlays.runsAt(sheet.Name, row, col); len(runs) > 1 {
		return runsToMarkdown(runs, opts)
	}
	if cell.HasRichRuns() {
		return runsToMarkdown(cell.RichRuns, opts)
	}
	var value string
	if cell != nil {
		value = cell.Value()
	}
	return scriptsToMarkdown(opts.clean(value))
}

// runsToHTML concatenates runs in order, wrapping script runs in <sup>/<sub>
// and bold/italic runs in <strong>/<em>.
func runsToHTML(runs []models.RichTextRun, opts Options) string {
	out := ""
	for _, r := range runs {
		text := html.EscapeString(opts.clean(r.Text))
		if r.Bold {
			text = "<strong>" + text + "</strong>"
		}
		if r.Italic {
			text = "<em>" + text + "</em>"
		}
		switch r.VertAlign {
		case models.VertAlignSuperscript:
			text = "<sup>" + text + "</sup>"
		case models.VertAlignSubscript:
			text = "<sub>" + text + "</sub>"
		}
		out += text
	}
	return out
}

// runsToMarkdown concatenates runs in bracket notation.
func runsToMarkdown(runs []models.RichTextRun, opts Options) string {
	out := ""
	for _, r := range runs {
		text := escapeMarkdown(opts.clean(r.Text))
		if r.Bold {
			text = "**" + text + "**"
		}
		if r.Italic {
			text = "*" + text + "*"
		}
		switch r.VertAlign {
		case models.VertAlignSuperscript:
			text = "^" + text + "^"
		case models.VertAlignSubscript:
			text = "~" + text + "~"
		}
		out += text
	}
	return out
}
