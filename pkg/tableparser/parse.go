package tableparser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/analyzer"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/loader"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/overlay"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/render"
)

var log = logrus.WithField("component", "tableparser")

// supportedExtensions lists the file types accepted by path-based entry
// points.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
	".csv":  true,
}

// TableParser sequences loading, scoring and rendering. A TableParser is not
// safe for concurrent use; batch processing gives each worker its own.
type TableParser struct {
	overlay *overlay.Parser
}

// New returns a ready parser.
func New() *TableParser {
	return &TableParser{overlay: overlay.NewParser()}
}

// Parse converts the file at path. It never returns an error: failures
// produce a result with Success=false carrying the error message, so batch
// callers can always consume a uniform shape.
func (p *TableParser) Parse(path string, opts ParseOptions) models.ParseResult {
	result, err := p.parse(path, opts)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("parse failed")
		return models.ParseResult{
			OutputFormat: opts.OutputFormat,
			Error:        err.Error(),
		}
	}
	return result
}

func (p *TableParser) parse(path string, opts ParseOptions) (models.ParseResult, error) {
	if err := opts.validate(); err != nil {
		return models.ParseResult{}, err
	}

	wb, err := p.load(path, opts)
	if err != nil {
		return models.ParseResult{}, err
	}

	var selector formatSelector
	if opts.OutputFormat == models.FormatAuto {
		if err := selector.selectByScore(wb); err != nil {
			return models.ParseResult{}, err
		}
	} else {
		selector.force(opts.OutputFormat)
	}

	// Overlay enrichment only applies to archive sources; for anything else
	// the parser yields nothing and rendering falls back to cell-native
	// styling.
	overlays := &render.Overlays{
		RichText: p.overlay.RichTextIndex(path),
		Shapes:   p.overlay.Shapes(path),
	}

	var content []string
	switch selector.format {
	case models.FormatMarkdown:
		md, err := render.ToMarkdown(wb, opts.renderOptions(), overlays)
		if err != nil {
			return models.ParseResult{}, &ConversionError{Format: "markdown", Err: err}
		}
		content = []string{md}
	case models.FormatHTML:
		chunks, err := render.ToHTML(wb, opts.renderOptions(), overlays)
		if err != nil {
			return models.ParseResult{}, &ConversionError{Format: "html", Err: err}
		}
		content = chunks
	}

	return models.ParseResult{
		Success:         true,
		OutputFormat:    selector.format,
		Content:         content,
		ComplexityScore: selector.score,
		Metadata:        render.WorkbookMetadata(wb),
		Shapes:          overlays.Shapes,
	}, nil
}

// AnalyzeOnly scores the file at path without rendering any output. Unlike
// Parse it propagates typed errors to the caller.
func (p *TableParser) AnalyzeOnly(path string) (*models.ComplexityScore, error) {
	wb, err := p.load(path, DefaultParseOptions())
	if err != nil {
		return nil, err
	}
	score, err := analyzer.Analyze(wb)
	if err != nil {
		return nil, &ComplexityAnalysisError{Err: err}
	}
	return score, nil
}

// SheetPreview is a bounded excerpt of one sheet.
type SheetPreview struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows holds up to maxRows x maxCols of display values.
	Rows [][]string `json:"preview"`
	// TotalRows is the full sheet row bound.
	TotalRows int `json:"total_rows"`
	// TotalCols is the full sheet column bound.
	TotalCols int `json:"total_cols"`
}

// Preview returns a bounded excerpt of every sheet without rendering. It
// propagates typed errors to the caller.
func (p *TableParser) Preview(path string, maxRows, maxCols int) ([]SheetPreview, error) {
	if maxRows <= 0 || maxCols <= 0 {
		return nil, &ValidationError{Field: "preview bounds", Message: "max rows and cols must be positive"}
	}

	wb, err := p.load(path, DefaultParseOptions())
	if err != nil {
		return nil, err
	}

	previews := make([]SheetPreview, 0, len(wb.Sheets))
	for _, sheet := range wb.Sheets {
		rows := maxRows
		if sheet.MaxRow < rows {
			rows = sheet.MaxRow
		}
		cols := maxCols
		if sheet.MaxCol < cols {
			cols = sheet.MaxCol
		}
		grid := make([][]string, rows)
		for r := 1; r <= rows; r++ {
			grid[r-1] = make([]string, cols)
			for c := 1; c <= cols; c++ {
				grid[r-1][c-1] = sheet.Cell(r, c).Value()
			}
		}
		previews = append(previews, SheetPreview{
			Name:      sheet.Name,
			Rows:      grid,
			TotalRows: sheet.MaxRow,
			TotalCols: sheet.MaxCol,
		})
	}
	return previews, nil
}

// load validates the path, runs the loader tiers and maps failures onto the
// error taxonomy.
func (p *TableParser) load(path string, opts ParseOptions) (*models.Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, &UnsupportedFileTypeError{
			Path:   path,
			Detail: fmt.Sprintf("extension %q is not supported", ext),
		}
	}

	wb, err := loader.Load(path, loader.Options{CSVEncoding: opts.Encoding})
	if err != nil {
		if errors.Is(err, loader.ErrEmptyInput) {
			return nil, &UnsupportedFileTypeError{Path: path, Detail: "file is empty"}
		}
		return nil, &FileLoadError{Path: path, Err: err}
	}
	return wb, nil
}
