package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// ToHTML renders each sheet as a sequence of self-contained <table>
// fragments. The header row always sits in a <thead> section; data rows are
// partitioned into chunks of at most ChunkRows rows, one fragment per chunk.
//
// Merge geometry is preserved: the anchor cell of a merged region is emitted
// with rowspan/colspan and every other cell of the region is suppressed, so
// each output row's colspans plus the rowspans carried over from rows above
// always add up to the sheet's column count.
func ToHTML(wb *models.Workbook, opts Options, overlays *Overlays) ([]string, error) {
	var chunks []string

	for _, sheet := range wb.Sheets {
		if err := models.ValidateMergedRegions(sheet.Merged); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		if sheet.MaxRow == 0 || sheet.MaxCol == 0 {
			continue
		}

		headerRow := buildRowHTML(sheet, 1, opts, overlays)

		var dataRows []int
		for r := 2; r <= sheet.MaxRow; r++ {
			if !opts.IncludeEmptyRows && sheet.RowIsEmpty(r) {
				continue
			}
			dataRows = append(dataRows, r)
		}

		chunkSize := opts.ChunkRows
		if chunkSize <= 0 {
			chunkSize = len(dataRows)
		}
		chunkCount := 1
		if chunkSize > 0 {
			chunkCount = (len(dataRows) + chunkSize - 1) / chunkSize
			if chunkCount == 0 {
				chunkCount = 1
			}
		}

		for ci := 0; ci < chunkCount; ci++ {
			var b strings.Builder
			b.WriteString("<table>\n")
			b.WriteString("<caption>" + html.EscapeString(sheet.Name) + "</caption>\n")
			b.WriteString("<thead>\n" + headerRow + "</thead>\n")
			b.WriteString("<tbody>\n")

			if chunkSize > 0 {
				start := ci * chunkSize
				end := start + chunkSize
				if end > len(dataRows) {
					end = len(dataRows)
				}
				for _, r := range dataRows[start:end] {
					b.WriteString(buildRowHTML(sheet, r, opts, overlays))
				}
			}

			b.WriteString("</tbody>\n</table>\n")
			chunks = append(chunks, b.String())
		}
	}

	return chunks, nil
}

// buildRowHTML emits one <tr>. Cells covered by a merged region but not
// anchoring it produce no element at all; that is what keeps rowspan and
// colspan consistent across rows.
func buildRowHTML(sheet *models.Sheet, row int, opts Options, overlays *Overlays) string {
	var b strings.Builder
	b.WriteString("<tr>")

	for col := 1; col <= sheet.MaxCol; col++ {
		region, inRegion := regionAt(sheet, row, col)
		if inRegion && !region.IsAnchor(row, col) {
			continue
		}

		cell := sheet.Cell(row, col)

		attrs := ""
		if inRegion {
			if span := region.RowSpan(); span > 1 {
				attrs += fmt.Sprintf(` rowspan="%d"`, span)
			}
			if span := region.ColSpan(); span > 1 {
				attrs += fmt.Sprintf(` colspan="%d"`, span)
			}
		}
		if opts.PreserveStyles && cell != nil {
			if style := inlineStyle(cell.Style); style != "" {
				attrs += ` style="` + style + `"`
			}
		}

		b.WriteString("<td" + attrs + ">")
		b.WriteString(cellHTML(sheet, cell, row, col, opts, overlays))
		b.WriteString("</td>")
	}

	b.WriteString("</tr>\n")
	return b.String()
}

// regionAt scans the sheet's merged regions for one containing the
// coordinate.
func regionAt(sheet *models.Sheet, row, col int) (models.MergedRegion, bool) {
	for _, r := range sheet.Merged {
		if r.Contains(row, col) {
			return r, true
		}
	}
	return models.MergedRegion{}, false
}
