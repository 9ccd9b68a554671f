package loader

import (
	"fmt"

	"github.com/thedatashed/xlsxreader"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// loadXlsxReader is the generic tabular tier: a row-streaming reader that
// copes with workbooks the structured parser rejects. It recovers values
// only; merges, styles and embedded-object counts are lost.
func loadXlsxReader(data []byte) (*models.Workbook, error) {
	xl, err := xlsxreader.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	wb := &models.Workbook{}
	for _, sheetName := range xl.Sheets {
		sheet := models.NewSheet(sheetName)
		for row := range xl.ReadRows(sheetName) {
			if row.Error != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", sheetName, row.Index, row.Error)
			}
			for _, cell := range row.Cells {
				if cell.Value == "" {
					continue
				}
				sheet.SetCell(row.Index, cell.ColumnIndex()+1, models.NewStringCell(cell.Value))
			}
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}
