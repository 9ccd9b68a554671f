package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// loadExcelize is the primary tier. It recovers the full model: values,
// formulas with cached results, hyperlinks, styles, rich-text runs, merged
// regions and embedded-object counts.
func loadExcelize(data []byte) (*models.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	charts := chartCounts(data)

	wb := &models.Workbook{HasVBA: hasVBAProject(data)}
	for _, sheetName := range f.GetSheetList() {
		sheet, err := loadExcelizeSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		sheet.ChartCount = charts[sheetName]
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func loadExcelizeSheet(f *excelize.File, name string) (*models.Sheet, error) {
	sheet := models.NewSheet(name)

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	styleCache := make(map[int]models.CellStyle)

	for rowIdx, row := range rows {
		rowNum := rowIdx + 1
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			colNum := colIdx + 1
			cellName, _ := excelize.CoordinatesToCellName(colNum, rowNum)
			sheet.SetCell(rowNum, colNum, buildCell(f, name, cellName, value, styleCache))
		}
	}

	merges, err := f.GetMergeCells(name)
	if err == nil {
		for _, m := range merges {
			region, ok := parseMergeRange(m.GetStartAxis(), m.GetEndAxis())
			if !ok {
				continue
			}
			sheet.AddMergedRegion(region)
		}
	}

	if pivots, err := f.GetPivotTables(name); err == nil {
		sheet.PivotTableCount = len(pivots)
	}
	if pics, err := f.GetPictureCells(name); err == nil {
		sheet.ImageCount = len(pics)
	}

	return sheet, nil
}

// buildCell classifies one non-empty cell and attaches formula, hyperlink,
// style and rich-text detail.
func buildCell(f *excelize.File, sheet, cellName, value string, styleCache map[int]models.CellStyle) *models.Cell {
	cell := models.NewStringCell(value)

	if formula, err := f.GetCellFormula(sheet, cellName); err == nil && formula != "" {
		cell.Kind = models.KindFormula
		if !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		cell.Formula = formula
		cell.Cached = value
	} else if t, err := f.GetCellType(sheet, cellName); err == nil && t == excelize.CellTypeBool {
		cell.Kind = models.KindBool
		cell.Bool = strings.EqualFold(value, "TRUE") || value == "1"
		cell.Str = value
	}

	if has, target, err := f.GetCellHyperLink(sheet, cellName); err == nil && has && target != "" {
		cell.Hyperlink = true
	}

	if styleID, err := f.GetCellStyle(sheet, cellName); err == nil {
		style, cached := styleCache[styleID]
		if !cached {
			style = convertStyle(f, styleID)
			styleCache[styleID] = style
		}
		cell.Style = style
	}

	if runs, err := f.GetCellRichText(sheet, cellName); err == nil && len(runs) > 0 {
		cell.RichRuns = convertRichRuns(runs)
	}

	return cell
}

func convertStyle(f *excelize.File, styleID int) models.CellStyle {
	var out models.CellStyle
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return out
	}

	if font := style.Font; font != nil {
		out.Bold = font.Bold
		out.Italic = font.Italic
		out.Underline = font.Underline != "" && font.Underline != "none"
		out.FontSize = font.Size
		out.FontColor = normalizeColor(font.Color)
		switch font.VertAlign {
		case "superscript":
			out.VertAlign = models.VertAlignSuperscript
		case "subscript":
			out.VertAlign = models.VertAlignSubscript
		}
	}
	if style.Fill.Type == "pattern" && style.Fill.Pattern > 0 && len(style.Fill.Color) > 0 {
		out.FillColor = normalizeColor(style.Fill.Color[0])
	}
	return out
}

func convertRichRuns(runs []excelize.RichTextRun) []models.RichTextRun {
	out := make([]models.RichTextRun, 0, len(runs))
	for _, r := range runs {
		run := models.RichTextRun{Text: r.Text}
		if r.Font != nil {
			run.Bold = r.Font.Bold
			run.Italic = r.Font.Italic
			switch r.Font.VertAlign {
			case "superscript":
				run.VertAlign = models.VertAlignSuperscript
			case "subscript":
				run.VertAlign = models.VertAlignSubscript
			}
		}
		out = append(out, run)
	}
	return out
}

// normalizeColor turns an ARGB/RGB hex value into "#RRGGBB".
func normalizeColor(c string) string {
	c = strings.TrimPrefix(c, "#")
	if len(c) < 6 {
		return ""
	}
	return "#" + strings.ToUpper(c[len(c)-6:])
}

func parseMergeRange(start, end string) (models.MergedRegion, bool) {
	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.MergedRegion{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.MergedRegion{}, false
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	return models.MergedRegion{MinRow: startRow, MinCol: startCol, MaxRow: endRow, MaxCol: endCol}, true
}
