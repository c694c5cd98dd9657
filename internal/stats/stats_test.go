package stats

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/vimkata/internal/journal"
	"github.com/verte-zerg/vimkata/internal/model"
)

func TestSummarize(t *testing.T) {
	attempts := []model.AttemptAggregate{
		{Keystrokes: 10, ElapsedSecs: 30, Matched: true},
		{Keystrokes: 25, ElapsedSecs: 45, Matched: false},
		{Keystrokes: 8, ElapsedSecs: 15, Matched: true},
	}
	totals := Summarize(attempts)
	if totals.Attempts != 3 || totals.Completed != 2 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if totals.TotalKeystrokes != 43 || totals.TotalSecs != 90 {
		t.Fatalf("unexpected sums: %+v", totals)
	}
	if rate := totals.MatchRate(); rate < 0.66 || rate > 0.67 {
		t.Fatalf("match rate = %f", rate)
	}
}

func TestGradeDistribution(t *testing.T) {
	attempts := []model.AttemptAggregate{
		{Grade: "B"},
		{Grade: "A"},
		{Grade: "B"},
		{Grade: ""}, // freestyle/failed, excluded
	}
	tallies := GradeDistribution(attempts)
	if len(tallies) != 2 {
		t.Fatalf("expected 2 tallies, got %d", len(tallies))
	}
	if tallies[0].Grade != "A" || tallies[0].Count != 1 {
		t.Fatalf("unexpected first tally: %+v", tallies[0])
	}
	if tallies[1].Grade != "B" || tallies[1].Count != 2 {
		t.Fatalf("unexpected second tally: %+v", tallies[1])
	}
}

func TestParDeltaSeries(t *testing.T) {
	attempts := []model.AttemptAggregate{
		{Par: 10, Keystrokes: 14},
		{Par: 10, Keystrokes: 9},
		{Par: 0, Keystrokes: 33},
	}
	series := ParDeltaSeries(attempts)
	want := []float64{4, -1, 33}
	for i, v := range want {
		if series[i] != v {
			t.Fatalf("series[%d] = %f, want %f", i, series[i], v)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %f, want %f", i, out[i], want[i])
		}
	}
	same := MovingAverage(values, 1)
	for i := range values {
		if same[i] != values[i] {
			t.Fatalf("window 1 must be identity")
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("empty input should render empty, got %q", got)
	}
	flat := Sparkline([]float64{3, 3, 3})
	if len(flat) != 3 || flat[0] != flat[1] || flat[1] != flat[2] {
		t.Fatalf("flat series should render uniformly: %q", flat)
	}
	rising := Sparkline([]float64{0, 5, 10})
	if rising[0] != ' ' || rising[2] != '@' {
		t.Fatalf("unexpected rising sparkline: %q", rising)
	}
}

func TestFormatTable(t *testing.T) {
	lines := FormatTable(
		[]string{"Grade", "Count"},
		[][]string{{"A", "3"}, {"B", "12"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Grade Count" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "A         3" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "B        12" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestBuildReport(t *testing.T) {
	j, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		_ = j.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := j.InsertAttempt(ctx, model.AttemptLog{
			ChallengeID: "motion_001",
			Version:     "1.0.0",
			Topic:       "Advanced Motions",
			Grade:       "B",
			Par:         10,
			Keystrokes:  14 - i,
			ElapsedSecs: 30,
			Matched:     true,
			RecordedAt:  time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}

	report, err := BuildReport(ctx, j, model.StatsConfig{Last: 2, Window: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(report.Attempts))
	}
	if report.Totals.Completed != 2 {
		t.Fatalf("unexpected totals: %+v", report.Totals)
	}
	if len(report.Grades) != 1 || report.Grades[0].Count != 2 {
		t.Fatalf("unexpected grades: %+v", report.Grades)
	}
	if len(report.Curve) != 2 {
		t.Fatalf("unexpected curve length: %d", len(report.Curve))
	}
	if len(report.Topics) != 1 || report.Topics[0] != "Advanced Motions" {
		t.Fatalf("unexpected topics: %v", report.Topics)
	}
}

func TestRenderSummary(t *testing.T) {
	report := Report{
		Attempts: []model.AttemptAggregate{{Matched: true}},
		Totals:   Totals{Attempts: 4, Completed: 3, TotalKeystrokes: 120, TotalSecs: 125},
		Grades:   []model.GradeTally{{Grade: "A", Count: 1}, {Grade: "C", Count: 2}},
		Curve:    []float64{4, 2, 0},
	}
	var b strings.Builder
	if err := RenderSummary(&b, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	for _, want := range []string{"Attempts: 4", "Completed: 3 (75.0%)", "Total time: 02:05", "Grade Count"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
