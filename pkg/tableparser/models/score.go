package models

// OutputFormat selects the textual rendering of a workbook.
type OutputFormat string

const (
	// FormatAuto lets the complexity analysis pick the format.
	FormatAuto OutputFormat = "auto"
	// FormatMarkdown flattens each sheet into a Markdown table.
	FormatMarkdown OutputFormat = "markdown"
	// FormatHTML preserves merge geometry with rowspan/colspan tables.
	FormatHTML OutputFormat = "html"
)

// ComplexityLevel buckets the weighted complexity total.
type ComplexityLevel string

const (
	// LevelSimple covers totals in [0,30].
	LevelSimple ComplexityLevel = "simple"
	// LevelMedium covers totals in (30,60].
	LevelMedium ComplexityLevel = "medium"
	// LevelComplex covers totals above 60.
	LevelComplex ComplexityLevel = "complex"
)

// ComplexityScore is the outcome of the structural-complexity assessment.
// Every dimension score lies in [0,100].
type ComplexityScore struct {
	// MergedCellsScore rates merged-cell density.
	MergedCellsScore float64 `json:"merged_cells_score"`
	// HeaderDepthScore rates multi-level header depth.
	HeaderDepthScore float64 `json:"header_depth_score"`
	// DataStructureScore rates formula/hyperlink/rich-style presence.
	DataStructureScore float64 `json:"data_structure_score"`
	// PivotTableScore rates embedded pivot table count.
	PivotTableScore float64 `json:"pivot_table_score"`
	// ChartScore rates embedded chart count.
	ChartScore float64 `json:"chart_score"`
	// VBAScore is 100 when the workbook embeds a macro project, else 0.
	VBAScore float64 `json:"vba_score"`
	// ScaleScore rates total cell count.
	ScaleScore float64 `json:"scale_score"`
	// TotalScore is the weighted sum in [0,100].
	TotalScore float64 `json:"total_score"`
	// Level buckets the total.
	Level ComplexityLevel `json:"level"`
	// RecommendedFormat is markdown for simple/medium, html for complex.
	RecommendedFormat OutputFormat `json:"recommended_format"`
	// Details carries the raw counts behind the score.
	Details map[string]any `json:"details"`
}
