package render

import (
	"strings"
	"testing"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

func singleSheetWorkbook(s *models.Sheet) *models.Workbook {
	return &models.Workbook{Sheets: []*models.Sheet{s}}
}

func TestToHTMLMergeGeometry(t *testing.T) {
	s := models.NewSheet("Report")
	s.SetCell(1, 1, models.NewStringCell("Region"))
	s.SetCell(1, 3, models.NewStringCell("X"))
	s.SetCell(2, 3, models.NewStringCell("Y"))
	s.SetCell(3, 1, models.NewStringCell("A3"))
	s.SetCell(3, 2, models.NewStringCell("B3"))
	s.SetCell(3, 3, models.NewStringCell("C3"))
	s.AddMergedRegion(models.MergedRegion{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2})

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	expected := `<table>
<caption>Report</caption>
<thead>
<tr><td rowspan="2" colspan="2">Region</td><td>X</td></tr>
</thead>
<tbody>
<tr><td>Y</td></tr>
<tr><td>A3</td><td>B3</td><td>C3</td></tr>
</tbody>
</table>
`
	if chunks[0] != expected {
		t.Errorf("output mismatch:\ngot:\n%s\nexpected:\n%s", chunks[0], expected)
	}
}

func TestToHTMLChunking(t *testing.T) {
	s := models.NewSheet("Big")
	s.SetCell(1, 1, models.NewStringCell("Header"))
	for r := 2; r <= 6; r++ {
		s.SetCell(r, 1, models.NewStringCell("row"))
	}

	opts := DefaultOptions()
	opts.ChunkRows = 2
	chunks, err := ToHTML(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 5 data rows at 2 per chunk, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if !strings.Contains(chunk, "<thead>\n<tr><td>Header</td></tr>\n</thead>") {
			t.Errorf("chunk %d missing repeated header:\n%s", i, chunk)
		}
	}

	// Zero means one unbounded fragment.
	opts.ChunkRows = 0
	chunks, err = ToHTML(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk with unbounded chunking, got %d", len(chunks))
	}
}

func TestToHTMLHeaderOnlySheet(t *testing.T) {
	s := models.NewSheet("Lone")
	s.SetCell(1, 1, models.NewStringCell("only"))

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0], "<tbody>\n</tbody>") {
		t.Errorf("expected empty tbody:\n%s", chunks[0])
	}
}

func TestToHTMLSkipsEmptyRows(t *testing.T) {
	s := models.NewSheet("Gaps")
	s.SetCell(1, 1, models.NewStringCell("h"))
	s.SetCell(4, 1, models.NewStringCell("v"))

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if got := strings.Count(chunks[0], "<tr>"); got != 2 {
		t.Errorf("expected 2 rows (header + one data row), got %d:\n%s", got, chunks[0])
	}

	opts := DefaultOptions()
	opts.IncludeEmptyRows = true
	chunks, err = ToHTML(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if got := strings.Count(chunks[0], "<tr>"); got != 4 {
		t.Errorf("expected 4 rows with empty rows kept, got %d:\n%s", got, chunks[0])
	}
}

func TestToHTMLRejectsOverlappingMerges(t *testing.T) {
	s := models.NewSheet("Bad")
	s.SetCell(1, 1, models.NewStringCell("x"))
	s.AddMergedRegion(models.MergedRegion{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2})
	s.AddMergedRegion(models.MergedRegion{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 3})

	_, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err == nil || !strings.Contains(err.Error(), "overlap") {
		t.Errorf("expected overlap error, got %v", err)
	}
}

func TestToHTMLFormulaDisplay(t *testing.T) {
	s := models.NewSheet("Calc")
	s.SetCell(1, 1, models.NewStringCell("Total"))
	s.SetCell(2, 1, &models.Cell{Kind: models.KindFormula, Formula: "=SUM(A1:A3)", Cached: "6"})

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], "<td>6</td>") {
		t.Errorf("expected cached result by default:\n%s", chunks[0])
	}

	opts := DefaultOptions()
	opts.ShowFormulas = true
	chunks, err = ToHTML(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], "<td><code>=SUM(A1:A3)</code></td>") {
		t.Errorf("expected formula text with ShowFormulas:\n%s", chunks[0])
	}
}

func TestToHTMLScriptCharacters(t *testing.T) {
	s := models.NewSheet("Chem")
	s.SetCell(1, 1, models.NewStringCell("H₂O"))
	s.SetCell(2, 1, models.NewStringCell("x¹²"))

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], "H<sub>2</sub>O") {
		t.Errorf("expected subscript conversion:\n%s", chunks[0])
	}
	if !strings.Contains(chunks[0], "x<sup>12</sup>") {
		t.Errorf("expected grouped superscript conversion:\n%s", chunks[0])
	}
}

func TestToHTMLRichRuns(t *testing.T) {
	s := models.NewSheet("Runs")
	cell := models.NewStringCell("E=mc2")
	cell.RichRuns = []models.RichTextRun{
		{Text: "E=mc"},
		{Text: "2", VertAlign: models.VertAlignSuperscript},
	}
	s.SetCell(1, 1, cell)
	s.SetCell(2, 1, models.NewStringCell("plain"))

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], "E=mc<sup>2</sup>") {
		t.Errorf("expected embedded runs to render:\n%s", chunks[0])
	}
}

func TestToHTMLOverlayRunsTakePrecedence(t *testing.T) {
	s := models.NewSheet("Data")
	s.SetCell(1, 1, models.NewStringCell("H2O"))
	s.SetCell(2, 1, models.NewStringCell("x"))

	overlays := &Overlays{
		RichText: &models.RichTextIndex{
			Strings: map[int][]models.RichTextRun{
				0: {
					{Text: "H"},
					{Text: "2", VertAlign: models.VertAlignSubscript},
					{Text: "O"},
				},
			},
			SheetCells: map[string]map[models.Coord]int{
				"Data": {{Row: 1, Col: 1}: 0},
			},
		},
	}

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), overlays)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], "H<sub>2</sub>O") {
		t.Errorf("expected overlay runs over the flat value:\n%s", chunks[0])
	}
	if strings.Contains(chunks[0], ">H2O<") {
		t.Errorf("flat value leaked through:\n%s", chunks[0])
	}
}

func TestToHTMLPreserveStyles(t *testing.T) {
	s := models.NewSheet("Styled")
	cell := models.NewStringCell("Total")
	cell.Style = models.CellStyle{Bold: true, FillColor: "#FFFF00"}
	s.SetCell(1, 1, cell)

	opts := DefaultOptions()
	opts.PreserveStyles = true
	chunks, err := ToHTML(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], `<td style="background-color: #FFFF00; font-weight: bold">Total</td>`) {
		t.Errorf("expected inline style attribute:\n%s", chunks[0])
	}
}

func TestToHTMLEscapesMarkup(t *testing.T) {
	s := models.NewSheet("Esc")
	s.SetCell(1, 1, models.NewStringCell("<b>&"))

	chunks, err := ToHTML(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(chunks[0], "&lt;b&gt;&amp;") {
		t.Errorf("expected escaped cell text:\n%s", chunks[0])
	}
}

// Every row's colspans plus the rowspans carried down from rows above must
// add up to the sheet width.
func TestToHTMLColumnSumInvariant(t *testing.T) {
	s := models.NewSheet("Wide")
	for c := 1; c <= 4; c++ {
		s.SetCell(1, c, models.NewStringCell("h"))
	}
	for r := 2; r <= 4; r++ {
		s.SetCell(r, 4, models.NewStringCell("v"))
	}
	s.AddMergedRegion(models.MergedRegion{MinRow: 2, MinCol: 1, MaxRow: 4, MaxCol: 2})
	s.AddMergedRegion(models.MergedRegion{MinRow: 2, MinCol: 3, MaxRow: 2, MaxCol: 4})
	s.AddMergedRegion(models.MergedRegion{MinRow: 3, MinCol: 3, MaxRow: 4, MaxCol: 3})

	opts := DefaultOptions()
	opts.IncludeEmptyRows = true
	chunks, err := ToHTML(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}

	// Each carry records columns covered from a rowspan above and how many
	// more rows it covers.
	type carry struct{ cols, rows int }
	var carries []carry
	for _, line := range strings.Split(chunks[0], "\n") {
		if !strings.HasPrefix(line, "<tr>") {
			continue
		}
		width := 0
		remaining := carries[:0]
		for _, c := range carries {
			width += c.cols
			c.rows--
			if c.rows > 0 {
				remaining = append(remaining, c)
			}
		}
		carries = remaining
		for _, cellText := range strings.Split(line, "<td")[1:] {
			rowspan, colspan := spanAttrs(t, cellText)
			width += colspan
			if rowspan > 1 {
				carries = append(carries, carry{cols: colspan, rows: rowspan - 1})
			}
		}
		if width != s.MaxCol {
			t.Errorf("row width = %d, expected %d: %s", width, s.MaxCol, line)
		}
	}
}

func spanAttrs(t *testing.T, cellText string) (rowspan, colspan int) {
	t.Helper()
	rowspan, colspan = 1, 1
	if i := strings.Index(cellText, `rowspan="`); i >= 0 {
		rowspan = int(cellText[i+len(`rowspan="`)] - '0')
	}
	if i := strings.Index(cellText, `colspan="`); i >= 0 {
		colspan = int(cellText[i+len(`colspan="`)] - '0')
	}
	return rowspan, colspan
}
