package render

import (
	"strings"
	"testing"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

func TestToMarkdownBasicTable(t *testing.T) {
	s := models.NewSheet("Summary")
	s.SetCell(1, 1, models.NewStringCell("Name"))
	s.SetCell(1, 2, models.NewStringCell("Age"))
	s.SetCell(2, 1, models.NewStringCell("Ann"))
	s.SetCell(2, 2, models.NewStringCell("34"))

	out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	expected := "## Summary\n\n" +
		"| Name | Age |\n" +
		"| --- | --- |\n" +
		"| Ann | 34 |\n"
	if out != expected {
		t.Errorf("output mismatch:\ngot:\n%s\nexpected:\n%s", out, expected)
	}
}

func TestToMarkdownSuppressesGenericSheetNames(t *testing.T) {
	for _, name := range []string{"Sheet1", "sheet", "Data"} {
		s := models.NewSheet(name)
		s.SetCell(1, 1, models.NewStringCell("x"))

		out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
		if err != nil {
			t.Fatalf("ToMarkdown failed: %v", err)
		}
		if strings.Contains(out, "##") {
			t.Errorf("generic sheet name %q produced a heading:\n%s", name, out)
		}
	}
}

func TestToMarkdownFlattensMerges(t *testing.T) {
	s := models.NewSheet("Merged")
	s.SetCell(1, 1, models.NewStringCell("Region"))
	s.SetCell(1, 3, models.NewStringCell("X"))
	s.SetCell(2, 2, models.NewStringCell("hidden"))
	s.SetCell(2, 3, models.NewStringCell("Y"))
	s.AddMergedRegion(models.MergedRegion{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2})

	out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	// The anchor keeps its value; covered cells render empty even when they
	// carry one.
	if !strings.Contains(out, "| Region |  | X |") {
		t.Errorf("expected anchor value with blank covered cell:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("covered cell value leaked:\n%s", out)
	}
	if !strings.Contains(out, "|  |  | Y |") {
		t.Errorf("expected fully blanked covered row cells:\n%s", out)
	}
}

func TestToMarkdownSkipsEmptyRows(t *testing.T) {
	s := models.NewSheet("Data")
	s.SetCell(1, 1, models.NewStringCell("h"))
	s.SetCell(4, 1, models.NewStringCell("v"))

	out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("expected header, separator and one data row, got:\n%s", out)
	}
}

func TestToMarkdownScriptNotation(t *testing.T) {
	s := models.NewSheet("Chem")
	s.SetCell(1, 1, models.NewStringCell("H₂O"))
	s.SetCell(2, 1, models.NewStringCell("x¹²"))

	out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if !strings.Contains(out, "H~2~O") {
		t.Errorf("expected subscript bracket notation:\n%s", out)
	}
	if !strings.Contains(out, "x^12^") {
		t.Errorf("expected grouped superscript bracket notation:\n%s", out)
	}
	if strings.Contains(out, "<sub>") || strings.Contains(out, "<sup>") {
		t.Errorf("raw HTML leaked into Markdown:\n%s", out)
	}
}

func TestToMarkdownRichRuns(t *testing.T) {
	s := models.NewSheet("Runs")
	cell := models.NewStringCell("bold note")
	cell.RichRuns = []models.RichTextRun{
		{Text: "bold", Bold: true},
		{Text: " note"},
	}
	s.SetCell(1, 1, cell)

	out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if !strings.Contains(out, "**bold** note") {
		t.Errorf("expected bold run notation:\n%s", out)
	}
}

func TestToMarkdownEscapesPipes(t *testing.T) {
	s := models.NewSheet("Pipes")
	s.SetCell(1, 1, models.NewStringCell("a|b"))
	s.SetCell(2, 1, models.NewStringCell("line1\nline2"))

	out, err := ToMarkdown(singleSheetWorkbook(s), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if !strings.Contains(out, `a\|b`) {
		t.Errorf("expected escaped pipe:\n%s", out)
	}
	if !strings.Contains(out, "line1 line2") {
		t.Errorf("expected newline collapsed to space:\n%s", out)
	}
}

func TestToMarkdownFormulaDisplay(t *testing.T) {
	s := models.NewSheet("Calc")
	s.SetCell(1, 1, models.NewStringCell("Total"))
	s.SetCell(2, 1, &models.Cell{Kind: models.KindFormula, Formula: "=SUM(A1:A3)", Cached: "6"})

	opts := DefaultOptions()
	opts.ShowFormulas = true
	out, err := ToMarkdown(singleSheetWorkbook(s), opts, nil)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if !strings.Contains(out, "`=SUM(A1:A3)`") {
		t.Errorf("expected formula in code span:\n%s", out)
	}
}
