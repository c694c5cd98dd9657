// Package stats contains attempt aggregation and reporting helpers.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/vimkata/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Totals summarizes a set of journaled attempts.
type Totals struct {
	Attempts        int
	Completed       int
	TotalKeystrokes int
	TotalSecs       int
}

// Summarize computes overall totals for the attempts.
func Summarize(attempts []model.AttemptAggregate) Totals {
	var t Totals
	for _, a := range attempts {
		t.Attempts++
		if a.Matched {
			t.Completed++
		}
		t.TotalKeystrokes += a.Keystrokes
		t.TotalSecs += a.ElapsedSecs
	}
	return t
}

// MatchRate returns the fraction of attempts whose buffer matched.
func (t Totals) MatchRate() float64 {
	if t.Attempts == 0 {
		return 0
	}
	return float64(t.Completed) / float64(t.Attempts)
}

// GradeDistribution tallies graded attempts per grade, best grade first.
// Ungraded attempts (freestyle or failed) are excluded.
func GradeDistribution(attempts []model.AttemptAggregate) []model.GradeTally {
	counts := map[string]int{}
	for _, a := range attempts {
		if a.Grade == "" {
			continue
		}
		counts[a.Grade]++
	}
	tallies := make([]model.GradeTally, 0, len(counts))
	for grade, count := range counts {
		tallies = append(tallies, model.GradeTally{Grade: grade, Count: count})
	}
	sort.Slice(tallies, func(i, j int) bool {
		return tallies[i].Grade < tallies[j].Grade
	})
	return tallies
}

// ParDeltaSeries returns keystrokes-over-par per graded attempt, in order.
// Freestyle attempts contribute their raw keystroke count.
func ParDeltaSeries(attempts []model.AttemptAggregate) []float64 {
	out := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		if a.Par > 0 {
			out = append(out, float64(a.Keystrokes-a.Par))
		} else {
			out = append(out, float64(a.Keystrokes))
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
