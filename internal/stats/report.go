package stats

import (
	"context"

	"github.com/verte-zerg/vimkata/internal/journal"
	"github.com/verte-zerg/vimkata/internal/model"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts []model.AttemptAggregate
	Totals   Totals
	Grades   []model.GradeTally
	// Curve is the smoothed keystrokes-over-par learning curve.
	Curve  []float64
	Topics []string
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, j *journal.Journal, cfg model.StatsConfig) (Report, error) {
	attempts, err := j.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	topics, err := j.Topics(ctx)
	if err != nil {
		return Report{}, err
	}
	window := cfg.Window
	if window <= 0 {
		window = 1
	}
	return Report{
		Attempts: attempts,
		Totals:   Summarize(attempts),
		Grades:   GradeDistribution(attempts),
		Curve:    MovingAverage(ParDeltaSeries(attempts), window),
		Topics:   topics,
	}, nil
}
