package tableparser

import (
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/analyzer"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// selectionState tracks output-format selection for one invocation. The only
// transitions are unselected -> scoring -> selected and unselected ->
// selected (forced); a selected format never reverts.
type selectionState int

const (
	stateUnselected selectionState = iota
	stateScoring
	stateSelected
)

type formatSelector struct {
	state  selectionState
	format models.OutputFormat
	score  *models.ComplexityScore
}

// force pins a caller-chosen format, skipping the analysis.
func (s *formatSelector) force(format models.OutputFormat) {
	if s.state == stateSelected {
		return
	}
	s.state = stateSelected
	s.format = format
}

// selectByScore runs the complexity analysis and adopts its recommendation.
func (s *formatSelector) selectByScore(wb *models.Workbook) error {
	if s.state == stateSelected {
		return nil
	}
	s.state = stateScoring
	score, err := analyzer.Analyze(wb)
	if err != nil {
		return &ComplexityAnalysisError{Err: err}
	}
	s.score = score
	s.format = score.RecommendedFormat
	s.state = stateSelected
	return nil
}
