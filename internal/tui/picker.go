package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

const previewLines = 8

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	topic := m.topics[m.topicIdx]
	if idx, res := m.pickerNav.handle(key, m.pickerIndex, len(topic.Challenges), m.listHeight()/2); res != navIgnored {
		m.pickerIndex = idx
		return m, nil
	}
	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "h":
		m.scr = screenHub
	case "?":
		m.helpReturn = screenPicker
		m.scr = screenHelp
	case "enter", "l":
		if len(topic.Challenges) == 0 {
			return m, nil
		}
		c := &topic.Challenges[m.pickerIndex]
		return m, m.startSession(c, m.topicOffset+m.pickerIndex+1)
	}
	return m, nil
}

func (m *Model) viewPicker() string {
	topic := m.topics[m.topicIdx]
	cat := challenge.CategoryForTopic(topic.ID)

	var b strings.Builder
	b.WriteString("\n " + categoryBadge(cat) + " " + boldStyle.Render(topic.Name) + "\n")
	done := m.topicProgress(topic)
	b.WriteString(dimStyle.Render(fmt.Sprintf(" Completed: %d/%d", done, len(topic.Challenges))) + "\n\n")

	var list strings.Builder
	for i, c := range topic.Challenges {
		line := m.pickerLine(i, &c)
		if i == m.pickerIndex {
			list.WriteString(selectedStyle.Render(line) + "\n")
		} else {
			list.WriteString(line + "\n")
		}
	}
	if len(topic.Challenges) == 0 {
		list.WriteString(dimStyle.Render("No challenges in this topic.") + "\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(strings.TrimRight(list.String(), "\n")),
		" ",
		boxStyle.Render(m.pickerDetail())))
	b.WriteString("\n" + footerStyle.Render(" j/k: move | enter: play | h: back | ?: help | q: quit") + "\n")
	return b.String()
}

// pickerLine renders one challenge row with a relative line number, the
// best-grade badge, and a stale marker.
func (m *Model) pickerLine(i int, c *challenge.Challenge) string {
	rel := i - m.pickerIndex
	if rel < 0 {
		rel = -rel
	}
	num := fmt.Sprintf("%3d", rel)
	if i == m.pickerIndex {
		num = fmt.Sprintf("%-3d", m.topicOffset+i+1)
	}

	badge := "[-]"
	if c.IsFreestyle() {
		if best, ok := m.state.BestKeystrokes(c.ID); ok {
			badge = fmt.Sprintf("[%d]", best)
		}
	} else if g, ok := m.state.BestGrade(c.ID); ok {
		badge = "[" + g.String() + "]"
	}

	stale := " "
	if m.state.IsStale(c.ID) {
		stale = "*"
	}
	return fmt.Sprintf("%s %s %-5s %s", num, stale, badge, c.Title)
}

func (m *Model) pickerDetail() string {
	topic := m.topics[m.topicIdx]
	if len(topic.Challenges) == 0 {
		return dimStyle.Render("Nothing to show.")
	}
	c := &topic.Challenges[m.pickerIndex]

	var b strings.Builder
	b.WriteString(boldStyle.Render(fmt.Sprintf("#%d %s", m.topicOffset+m.pickerIndex+1, c.Title)) + "\n\n")
	if len(c.FocusedActions) > 0 {
		b.WriteString(dimStyle.Render("Skills: ") + strings.Join(c.FocusedActions, ", ") + "\n")
	}
	if c.IsFreestyle() {
		if best, ok := m.state.BestKeystrokes(c.ID); ok {
			b.WriteString(dimStyle.Render("Personal best: ") + fmt.Sprintf("%d keystrokes", best) + "\n")
		} else {
			b.WriteString(dimStyle.Render("No par. Beat your own best.") + "\n")
		}
	} else {
		b.WriteString(dimStyle.Render("Par: ") + fmt.Sprintf("%d keystrokes", c.ParKeystrokes) + "\n")
		b.WriteString(dimStyle.Render("Thresholds: ") + thresholdLine(c) + "\n")
	}
	if m.state.IsStale(c.ID) {
		b.WriteString(warnStyle.Render("Score recorded for an older version.") + "\n")
	}

	if attempts := m.state.Attempts(c.ID); len(attempts) > 0 {
		b.WriteString("\n" + dimStyle.Render("Best attempts:") + "\n")
		top := attempts
		if len(top) > 3 {
			top = top[:3]
		}
		for _, a := range top {
			if c.IsFreestyle() {
				b.WriteString(fmt.Sprintf("  %4d keys  %02d:%02d\n", a.Keystrokes, a.TimeSecs/60, a.TimeSecs%60))
			} else {
				b.WriteString(fmt.Sprintf("  %s %4d keys  %02d:%02d\n",
					gradeBadge(&a.Grade), a.Keystrokes, a.TimeSecs/60, a.TimeSecs%60))
			}
		}
	}

	b.WriteString("\n" + dimStyle.Render("Target:") + "\n")
	b.WriteString(renderPreview(c.Target.Content, previewLines, 44))
	b.WriteString("\n" + darkStyle.Render("Press ENTER to start."))
	return b.String()
}

func thresholdLine(c *challenge.Challenge) string {
	parts := make([]string, 0, 5)
	for _, g := range challenge.Grades[:5] {
		parts = append(parts, fmt.Sprintf("%s≤%d", g.String(), c.Threshold(g)))
	}
	return strings.Join(parts, " ")
}

// renderPreview shows the first maxLines lines of content, each truncated
// to width display cells.
func renderPreview(content string, maxLines, width int) string {
	lines := strings.Split(content, "\n")
	truncated := false
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(darkStyle.Render(fmt.Sprintf("%2d ", i+1)))
		b.WriteString(runewidth.Truncate(line, width, "…"))
		b.WriteString("\n")
	}
	if truncated {
		b.WriteString(darkStyle.Render("   …"))
	}
	return strings.TrimRight(b.String(), "\n")
}
