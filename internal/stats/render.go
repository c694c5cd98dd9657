package stats

import (
	"fmt"
	"io"
)

// RenderSummary prints a plain-text report, used when stdout is not a
// terminal.
func RenderSummary(w io.Writer, report Report) error {
	if report.Totals.Attempts == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded yet.")
		return err
	}
	t := report.Totals
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", t.Attempts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed: %d (%.1f%%)\n", t.Completed, t.MatchRate()*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total keystrokes: %d\n", t.TotalKeystrokes); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total time: %02d:%02d\n", t.TotalSecs/60, t.TotalSecs%60); err != nil {
		return err
	}
	if len(report.Grades) > 0 {
		if _, err := fmt.Fprintln(w, "\nGrades"); err != nil {
			return err
		}
		rows := make([][]string, 0, len(report.Grades))
		for _, tally := range report.Grades {
			rows = append(rows, []string{tally.Grade, fmt.Sprintf("%d", tally.Count)})
		}
		for _, line := range FormatTable([]string{"Grade", "Count"}, rows, map[int]bool{1: true}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if len(report.Curve) > 1 {
		if _, err := fmt.Fprintf(w, "\nKeystrokes over par: %s\n", Sparkline(report.Curve)); err != nil {
			return err
		}
	}
	return nil
}
