package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

// hubItem is one rendered line of the topic list: a category header, a
// spacer, or a selectable topic entry.
type hubItem struct {
	header   bool
	spacer   bool
	category challenge.Category
	topicIdx int
}

// buildHubItems lays the topics out under category headers in display
// order. hubEntries holds the hubItems positions of selectable entries.
func (m *Model) buildHubItems() {
	m.hubItems = m.hubItems[:0]
	m.hubEntries = m.hubEntries[:0]
	for _, cat := range challenge.Categories {
		first := true
		for i, t := range m.topics {
			if challenge.CategoryForTopic(t.ID) != cat {
				continue
			}
			if first {
				if len(m.hubItems) > 0 {
					m.hubItems = append(m.hubItems, hubItem{spacer: true})
				}
				m.hubItems = append(m.hubItems, hubItem{header: true, category: cat})
				first = false
			}
			m.hubEntries = append(m.hubEntries, len(m.hubItems))
			m.hubItems = append(m.hubItems, hubItem{category: cat, topicIdx: i})
		}
	}
	if m.hubIndex >= len(m.hubEntries) {
		m.hubIndex = 0
	}
}

func (m *Model) selectedTopicIdx() int {
	if len(m.hubEntries) == 0 {
		return -1
	}
	return m.hubItems[m.hubEntries[m.hubIndex]].topicIdx
}

func (m *Model) updateHub(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if idx, res := m.hubNav.handle(key, m.hubIndex, len(m.hubEntries), m.listHeight()/2); res != navIgnored {
		m.hubIndex = idx
		return m, nil
	}
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "?":
		m.helpReturn = screenHub
		m.scr = screenHelp
	case "enter", "l":
		idx := m.selectedTopicIdx()
		if idx < 0 {
			return m, nil
		}
		cat := challenge.CategoryForTopic(m.topics[idx].ID)
		if !m.categoryUnlocked(cat) {
			return m, nil
		}
		m.topicIdx = idx
		m.topicOffset = m.challengeOffset(idx)
		m.pickerIndex = 0
		m.pickerNav = nav{}
		m.scr = screenPicker
	}
	return m, nil
}

// topicProgress counts completed challenges in a topic.
func (m *Model) topicProgress(t challenge.Topic) int {
	done := 0
	for _, c := range t.Challenges {
		if _, ok := m.state.BestGrade(c.ID); ok {
			done++
		}
	}
	return done
}

func (m *Model) overallStats() (completed, total, gradeA int) {
	for _, t := range m.topics {
		for _, c := range t.Challenges {
			total++
			g, ok := m.state.BestGrade(c.ID)
			if !ok {
				continue
			}
			completed++
			if !c.IsFreestyle() && g == challenge.GradeA {
				gradeA++
			}
		}
	}
	return completed, total, gradeA
}

func (m *Model) viewHub() string {
	var b strings.Builder
	b.WriteString("\n " + titleBadgeStyle.Render("VIMKATA") + "\n")

	completed, total, gradeA := m.overallStats()
	header := fmt.Sprintf(" Completed: %d/%d | Grade A: %d | Attempts: %d",
		completed, total, gradeA, m.state.Stats.ChallengesAttempted)
	b.WriteString(dimStyle.Render(header))
	if stale := m.state.StaleCount(); stale > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf(" | %d score(s) outdated", stale)))
	}
	b.WriteString("\n\n")

	var list strings.Builder
	selectedPos := -1
	if len(m.hubEntries) > 0 {
		selectedPos = m.hubEntries[m.hubIndex]
	}
	for pos, item := range m.hubItems {
		switch {
		case item.spacer:
			list.WriteString("\n")
		case item.header:
			label := item.category.String()
			if !m.categoryUnlocked(item.category) {
				label += "  🔒"
			}
			list.WriteString(categoryHeaderStyle(item.category).Render(label) + "\n")
		default:
			t := m.topics[item.topicIdx]
			done := m.topicProgress(t)
			line := fmt.Sprintf("  %-24s %2d/%-2d", t.Name, done, len(t.Challenges))
			unlocked := m.categoryUnlocked(item.category)
			if !unlocked {
				line += "  [LOCKED]"
			}
			switch {
			case pos == selectedPos:
				list.WriteString(selectedStyle.Render("▸"+line[1:]) + "\n")
			case !unlocked:
				list.WriteString(darkStyle.Render(line) + "\n")
			case done == len(t.Challenges) && done > 0:
				list.WriteString(successStyle.Render(line) + "\n")
			default:
				list.WriteString(line + "\n")
			}
		}
	}

	detail := m.hubDetail()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(strings.TrimRight(list.String(), "\n")),
		" ",
		boxStyle.Render(detail)))
	b.WriteString("\n" + footerStyle.Render(" j/k: move | enter: open | ?: help | q: quit") + "\n")
	return b.String()
}

func (m *Model) hubDetail() string {
	idx := m.selectedTopicIdx()
	if idx < 0 {
		return dimStyle.Render("No topics found.")
	}
	t := m.topics[idx]
	cat := challenge.CategoryForTopic(t.ID)
	var b strings.Builder
	b.WriteString(categoryBadge(cat) + "\n\n")
	b.WriteString(boldStyle.Render(t.Name) + "\n")
	b.WriteString(wrapText(t.Description, 40) + "\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d challenge(s)", len(t.Challenges))))
	if !m.categoryUnlocked(cat) {
		b.WriteString("\n\n" + warnStyle.Render("Locked: finish the previous\ncategory to unlock."))
	}
	return b.String()
}

// wrapText does naive word wrapping at width columns.
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
