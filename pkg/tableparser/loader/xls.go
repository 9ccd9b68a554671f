package loader

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// loadBIFF reads legacy binary workbooks. Values only; the format's merge
// and style records are not recovered by this tier.
func loadBIFF(data []byte) (*models.Workbook, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open legacy workbook: %w", err)
	}

	wb := &models.Workbook{}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := models.NewSheet(ws.Name)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				continue
			}
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				value := row.Col(c)
				if value == "" {
					continue
				}
				sheet.SetCell(r+1, c+1, models.NewStringCell(value))
			}
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("legacy workbook has no sheets")
	}
	return wb, nil
}
