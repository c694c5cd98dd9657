package session

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

// runtimeTemplate implements keystroke counting, the elapsed timer, hint
// display, and save-triggered auto-exit with results-file writing. The
// generated preamble supplies its inputs.
//
//go:embed runtime.lua
var runtimeTemplate string

// freestyleLimit stands in for a keystroke bound when there is no par.
const freestyleLimit = 9999

// EscapeLua escapes a string for a single-quoted Lua string literal.
// Backslash, quote, newline, and carriage return would otherwise corrupt
// the generated script when challenge text contains them.
func EscapeLua(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return r.Replace(s)
}

// buildScript prepends the per-session variable preamble to the fixed
// runtime template.
func buildScript(c *challenge.Challenge, number int, files Files) string {
	freestyle := c.IsFreestyle()
	limit := freestyleLimit
	if !freestyle {
		limit = c.Threshold(challenge.GradeF)
	}

	var b strings.Builder
	writeNum := func(name string, v int) {
		fmt.Fprintf(&b, "%s = %d\n", name, v)
	}
	writeStr := func(name, v string) {
		fmt.Fprintf(&b, "%s = '%s'\n", name, EscapeLua(v))
	}

	writeNum("_VK_NUMBER", number)
	writeStr("_VK_TITLE", c.Title)
	writeNum("_VK_PAR", c.ParKeystrokes)
	writeStr("_VK_HINT", c.Hint)
	writeStr("_VK_DETAILED_HINT", c.DetailedHint)
	writeNum("_VK_LIMIT", limit)
	fmt.Fprintf(&b, "_VK_FREESTYLE = %t\n", freestyle)
	writeStr("_VK_RESULTS_PATH", files.Results)
	writeStr("_VK_TARGET_PATH", files.Target)
	writeStr("_VK_START_PATH", files.Start)
	for _, g := range challenge.Grades {
		writeNum("_VK_THRESHOLD_"+g.String(), c.Threshold(g))
	}

	return b.String() + "\n" + runtimeTemplate
}
