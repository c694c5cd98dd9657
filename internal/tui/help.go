package tui

import "strings"

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{
		title: "Navigation",
		keys: [][2]string{
			{"j / k", "move down / up (counts work: 3j)"},
			{"gg / G", "jump to first / last"},
			{"ctrl+d / ctrl+u", "half page down / up"},
			{"enter / l", "open topic or start challenge"},
			{"h / esc", "back"},
		},
	},
	{
		title: "In the editor",
		keys: [][2]string{
			{":w", "finish the attempt"},
			{"F1", "show hint (twice for the detailed hint)"},
			{":qall!", "abandon without saving"},
		},
	},
	{
		title: "Other",
		keys: [][2]string{
			{"r", "retry (on the result screen)"},
			{"?", "toggle this help"},
			{"q / ctrl+c", "quit"},
		},
	},
}

func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Help") + "\n")
	for _, section := range helpSections {
		b.WriteString("\n" + dimStyle.Render(section.title) + "\n")
		for _, kv := range section.keys {
			b.WriteString("  " + boldStyle.Render(padRight(kv[0], 18)) + kv[1] + "\n")
		}
	}
	out := boxStyle.Render(strings.TrimRight(b.String(), "\n"))
	return "\n" + out + "\n" + footerStyle.Render(" any key: back") + "\n"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
