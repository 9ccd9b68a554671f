package models

// ParseResult is the packaged outcome of one parse invocation.
type ParseResult struct {
	// Success reports whether parsing completed.
	Success bool `json:"success"`
	// OutputFormat is the format actually rendered.
	OutputFormat OutputFormat `json:"output_format"`
	// Content holds the rendered output: a single element for Markdown, one
	// self-contained <table> fragment per chunk for HTML.
	Content []string `json:"content"`
	// ComplexityScore is set when the analysis ran (auto format).
	ComplexityScore *ComplexityScore `json:"complexity_score,omitempty"`
	// Metadata summarizes the workbook.
	Metadata Metadata `json:"metadata"`
	// Shapes carries free-floating drawing text found in the source archive.
	Shapes []ShapeText `json:"shapes,omitempty"`
	// Error carries the failure message when Success is false.
	Error string `json:"error,omitempty"`
}
