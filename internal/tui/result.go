package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		if m.current != nil {
			return m, m.startSession(m.current, m.currentNumber)
		}
	default:
		m.scr = screenPicker
	}
	return m, nil
}

func (m *Model) viewResult() string {
	var b strings.Builder
	c := m.current
	if c != nil {
		b.WriteString(boldStyle.Render(fmt.Sprintf("#%d %s", m.currentNumber, c.Title)) + "\n\n")
	}

	switch {
	case m.sessionErr != nil:
		b.WriteString(failStyle.Render("SESSION ERROR") + "\n\n")
		b.WriteString(wrapText(m.sessionErr.Error(), 56) + "\n")
	case !m.result.BufferMatches:
		b.WriteString(failStyle.Render("FAILED") + "\n\n")
		b.WriteString("The buffer does not match the target.\n")
		b.WriteString(m.telemetryLines())
	case c != nil && c.IsFreestyle():
		status := successStyle.Render("COMPLETED")
		if !m.prevBestOK || m.result.Keystrokes < m.prevBest {
			status += " " + newBestStyle.Render("NEW BEST!")
		}
		b.WriteString(status + "\n\n")
		b.WriteString(m.telemetryLines())
		if m.prevBestOK {
			b.WriteString(dimStyle.Render(fmt.Sprintf("Previous best: %d keystrokes\n", m.prevBest)))
		}
	default:
		grade := m.resultGrade
		status := gradeStyle(*grade).Render("GRADE " + grade.String())
		if !m.prevBestOK || m.result.Keystrokes < m.prevBest {
			status += " " + newBestStyle.Render("NEW BEST!")
		}
		b.WriteString(status + "\n\n")
		b.WriteString(m.telemetryLines())
		if c != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf("Par: %d\n", c.ParKeystrokes)))
		}
	}

	out := boxStyle.Render(strings.TrimRight(b.String(), "\n"))
	return "\n" + out + "\n" + footerStyle.Render(" r: retry | any key: back | q: quit") + "\n"
}

func (m *Model) telemetryLines() string {
	return fmt.Sprintf("Keystrokes: %d\nTime: %02d:%02d\n",
		m.result.Keystrokes, m.result.ElapsedSecs/60, m.result.ElapsedSecs%60)
}
