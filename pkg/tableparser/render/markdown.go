package render

import (
	"fmt"
	"strings"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// ToMarkdown renders each sheet as a flattened pipe table. The first
// non-empty row becomes the header. Merged regions are flattened: their value
// belongs to the anchor cell only and every covered cell renders empty. That
// fidelity loss is the reason Markdown is reserved for structurally simple
// sheets.
func ToMarkdown(wb *models.Workbook, opts Options, overlays *Overlays) (string, error) {
	var sections []string

	for _, sheet := range wb.Sheets {
		if err := models.ValidateMergedRegions(sheet.Merged); err != nil {
			return "", fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		if sheet.MaxRow == 0 || sheet.MaxCol == 0 {
			continue
		}

		var rows []int
		for r := 1; r <= sheet.MaxRow; r++ {
			if !opts.IncludeEmptyRows && sheet.RowIsEmpty(r) {
				continue
			}
			rows = append(rows, r)
		}
		if len(rows) == 0 {
			continue
		}

		var b strings.Builder
		if !isGenericSheetName(sheet.Name) {
			b.WriteString("## " + escapeMarkdown(sheet.Name) + "\n\n")
		}

		b.WriteString(buildRowMarkdown(sheet, rows[0], opts, overlays))
		b.WriteString("|")
		for col := 1; col <= sheet.MaxCol; col++ {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")

		for _, r := range rows[1:] {
			b.WriteString(buildRowMarkdown(sheet, r, opts, overlays))
		}

		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n"), nil
}

// buildRowMarkdown emits one pipe-table row. Covered non-anchor cells of a
// merged region render empty regardless of any value they may carry.
func buildRowMarkdown(sheet *models.Sheet, row int, opts Options, overlays *Overlays) string {
	var b strings.Builder
	b.WriteString("|")
	for col := 1; col <= sheet.MaxCol; col++ {
		content := ""
		if region, ok := regionAt(sheet, row, col); !ok || region.IsAnchor(row, col) {
			content = cellMarkdown(sheet, sheet.Cell(row, col), row, col, opts, overlays)
		}
		b.WriteString(" " + content + " |")
	}
	b.WriteString("\n")
	return b.String()
}
