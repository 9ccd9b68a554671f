// Package analyzer scores the structural complexity of a workbook and picks
// the output format that can represent it faithfully.
package analyzer

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

var log = logrus.WithField("component", "analyzer")

// baseWeights apply when the workbook has no pivot tables, charts or macros.
var baseWeights = map[string]float64{
	"merged_cells":   0.40,
	"header_depth":   0.30,
	"data_structure": 0.20,
	"scale":          0.10,
}

// advancedWeights apply as soon as any pivot, chart or macro dimension is
// nonzero.
var advancedWeights = map[string]float64{
	"merged_cells":   0.25,
	"header_depth":   0.10,
	"data_structure": 0.15,
	"pivot_tables":   0.10,
	"charts":         0.10,
	"vba":            0.20,
	"scale":          0.10,
}

// Complexity level thresholds: totals at or below simpleMax are simple,
// at or below mediumMax are medium, anything above is complex.
const (
	simpleMax = 30.0
	mediumMax = 60.0
)

// headerScanRows bounds how many leading rows are inspected for multi-level
// header merges. Sheets whose headers start below this window under-score;
// that is the documented behavior, not a defect.
const headerScanRows = 5

// structureSampleRows bounds how many leading rows are sampled for formulas,
// hyperlinks and bold styling.
const structureSampleRows = 20

// Analyze scores a workbook across all dimensions and recommends an output
// format. Per-sheet dimensions combine by maximum: the single most complex
// sheet dominates. Zero-dimension sheets score 0 on every axis and never
// fail the analysis.
func Analyze(wb *models.Workbook) (*models.ComplexityScore, error) {
	score := &models.ComplexityScore{}

	details := map[string]any{
		"sheets_count":       len(wb.Sheets),
		"total_rows":         0,
		"total_cols":         0,
		"merged_cells_count": 0,
		"pivot_tables_count": 0,
		"charts_count":       0,
		"has_vba":            wb.HasVBA,
	}

	totalRows, maxCols, mergeCount, pivotCount, chartCount := 0, 0, 0, 0, 0

	for _, sheet := range wb.Sheets {
		score.MergedCellsScore = math.Max(score.MergedCellsScore, mergedCellsScore(sheet))
		score.HeaderDepthScore = math.Max(score.HeaderDepthScore, headerDepthScore(sheet))
		score.DataStructureScore = math.Max(score.DataStructureScore, dataStructureScore(sheet))
		score.PivotTableScore = math.Max(score.PivotTableScore, pivotTableScore(sheet.PivotTableCount))
		score.ChartScore = math.Max(score.ChartScore, chartScore(sheet.ChartCount))
		score.ScaleScore = math.Max(score.ScaleScore, scaleScore(sheet))

		totalRows += sheet.MaxRow
		if sheet.MaxCol > maxCols {
			maxCols = sheet.MaxCol
		}
		mergeCount += len(sheet.Merged)
		pivotCount += sheet.PivotTableCount
		chartCount += sheet.ChartCount
	}

	if wb.HasVBA {
		score.VBAScore = 100
	}

	details["total_rows"] = totalRows
	details["total_cols"] = maxCols
	details["merged_cells_count"] = mergeCount
	details["pivot_tables_count"] = pivotCount
	details["charts_count"] = chartCount
	score.Details = details

	score.TotalScore = weightedTotal(score)
	score.Level, score.RecommendedFormat = classify(score.TotalScore)

	log.WithFields(logrus.Fields{
		"total":  score.TotalScore,
		"level":  score.Level,
		"format": score.RecommendedFormat,
	}).Debug("complexity analysis complete")

	return score, nil
}

// mergedCellsScore rates the share of the grid covered by merges: 20 below
// 5%, 50 below 15%, 80 at or above 15%, plus 20 (capped at 100) when any
// region spans both multiple rows and multiple columns.
func mergedCellsScore(sheet *models.Sheet) float64 {
	if len(sheet.Merged) == 0 {
		return 0
	}
	totalCells := sheet.MaxRow * sheet.MaxCol
	if totalCells == 0 {
		return 0
	}

	mergedCells := 0
	hasComplexMerge := false
	for _, r := range sheet.Merged {
		mergedCells += r.Area()
		if r.RowSpan() > 1 && r.ColSpan() > 1 {
			hasComplexMerge = true
		}
	}

	ratio := float64(mergedCells) / float64(totalCells)
	var s float64
	switch {
	case ratio < 0.05:
		s = 20
	case ratio < 0.15:
		s = 50
	default:
		s = 80
	}
	if hasComplexMerge {
		s = math.Min(100, s+20)
	}
	return s
}

// headerDepthScore maps the deepest row-span among merges anchored in the
// first rows to a score: span 1 is a single-level header, deeper spans mark
// multi-level headers.
func headerDepthScore(sheet *models.Sheet) float64 {
	if len(sheet.Merged) == 0 {
		return 0
	}

	headerRows := headerScanRows
	if sheet.MaxRow < headerRows {
		headerRows = sheet.MaxRow
	}

	maxRowSpan := 0
	for _, r := range sheet.Merged {
		if r.MinRow > headerRows {
			continue
		}
		if span := r.RowSpan(); span > maxRowSpan {
			maxRowSpan = span
		}
	}

	switch {
	case maxRowSpan <= 1:
		return 0
	case maxRowSpan == 2:
		return 30
	case maxRowSpan == 3:
		return 60
	default:
		return 100
	}
}

// dataStructureScore samples the leading rows for structural richness:
// formulas +30, hyperlinks +20, bold styling (a rich-text proxy) +30,
// capped at 100.
func dataStructureScore(sheet *models.Sheet) float64 {
	sampleRows := structureSampleRows
	if sheet.MaxRow < sampleRows {
		sampleRows = sheet.MaxRow
	}

	hasFormula, hasHyperlink, hasRichStyle := false, false, false
	for coord, cell := range sheet.Cells {
		if coord.Row > sampleRows {
			continue
		}
		if cell.Kind == models.KindFormula {
			hasFormula = true
		}
		if cell.Hyperlink {
			hasHyperlink = true
		}
		if cell.Style.Bold {
			hasRichStyle = true
		}
		if hasFormula && hasHyperlink && hasRichStyle {
			break
		}
	}

	s := 0.0
	if hasFormula {
		s += 30
	}
	if hasHyperlink {
		s += 20
	}
	if hasRichStyle {
		s += 30
	}
	return math.Min(100, s)
}

// pivotTableScore maps pivot table counts to a step score.
func pivotTableScore(count int) float64 {
	switch {
	case count == 0:
		return 0
	case count == 1:
		return 40
	case count <= 3:
		return 70
	default:
		return 100
	}
}

// chartScore maps chart counts to a step score.
func chartScore(count int) float64 {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 30
	case count <= 5:
		return 60
	default:
		return 100
	}
}

// scaleScore is a step function of the total cell count with breakpoints at
// 100, 1000 and 10000 cells.
func scaleScore(sheet *models.Sheet) float64 {
	totalCells := sheet.MaxRow * sheet.MaxCol
	switch {
	case totalCells < 100:
		return 0
	case totalCells < 1000:
		return 20
	case totalCells < 10000:
		return 50
	default:
		return 80
	}
}

// weightedTotal combines the dimension scores. The advanced weight set kicks
// in when any pivot, chart or macro signal is present.
func weightedTotal(s *models.ComplexityScore) float64 {
	dims := map[string]float64{
		"merged_cells":   s.MergedCellsScore,
		"header_depth":   s.HeaderDepthScore,
		"data_structure": s.DataStructureScore,
		"pivot_tables":   s.PivotTableScore,
		"charts":         s.ChartScore,
		"vba":            s.VBAScore,
		"scale":          s.ScaleScore,
	}

	weights := baseWeights
	if s.PivotTableScore > 0 || s.ChartScore > 0 || s.VBAScore > 0 {
		weights = advancedWeights
	}

	total := 0.0
	for dim, w := range weights {
		total += dims[dim] * w
	}
	return total
}

// classify buckets a weighted total. Bucket bounds are inclusive at the low
// end: a total of exactly 30 is still simple.
func classify(total float64) (models.ComplexityLevel, models.OutputFormat) {
	switch {
	case total <= simpleMax:
		return models.LevelSimple, models.FormatMarkdown
	case total <= mediumMax:
		return models.LevelMedium, models.FormatMarkdown
	default:
		return models.LevelComplex, models.FormatHTML
	}
}
