// Package tableparser converts spreadsheet files into Markdown or HTML,
// choosing the encoding by an automated structural-complexity assessment.
package tableparser

import (
	"fmt"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/render"
)

// ParseOptions configures one parse invocation.
type ParseOptions struct {
	// OutputFormat is auto, markdown or html. Auto runs the complexity
	// analysis and adopts its recommendation.
	OutputFormat models.OutputFormat
	// ChunkRows bounds data rows per HTML table fragment (0 = unbounded).
	ChunkRows int
	// Encoding overrides CSV encoding detection ("" = detect).
	Encoding string
	// CleanIllegalChars strips control characters from cell text.
	CleanIllegalChars bool
	// PreserveStyles emits inline cell styles in HTML output.
	PreserveStyles bool
	// IncludeEmptyRows keeps rows whose cells are all absent or blank.
	IncludeEmptyRows bool
	// ShowFormulas renders formula text instead of cached results.
	ShowFormulas bool
}

// DefaultParseOptions returns the option defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		OutputFormat:      models.FormatAuto,
		ChunkRows:         render.DefaultChunkRows,
		CleanIllegalChars: true,
	}
}

// validate rejects unknown option values.
func (o ParseOptions) validate() error {
	switch o.OutputFormat {
	case models.FormatAuto, models.FormatMarkdown, models.FormatHTML:
	default:
		return &ValidationError{
			Field:   "output_format",
			Message: fmt.Sprintf("%q is not one of auto, markdown, html", o.OutputFormat),
		}
	}
	if o.ChunkRows < 0 {
		return &ValidationError{
			Field:   "chunk_rows",
			Message: fmt.Sprintf("%d is negative", o.ChunkRows),
		}
	}
	return nil
}

func (o ParseOptions) renderOptions() render.Options {
	return render.Options{
		ChunkRows:         o.ChunkRows,
		IncludeEmptyRows:  o.IncludeEmptyRows,
		PreserveStyles:    o.PreserveStyles,
		CleanIllegalChars: o.CleanIllegalChars,
		ShowFormulas:      o.ShowFormulas,
	}
}
