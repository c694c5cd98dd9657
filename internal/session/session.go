// Package session orchestrates one external editing session: it prepares a
// scratch workspace, launches the editor configured to diff and track the
// attempt, and reads back the collected telemetry when the editor exits.
package session

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

// DefaultEditor is the editor binary used when the config names none.
const DefaultEditor = "nvim"

// workspaceDir is the fixed scratch subdirectory under the process temp dir.
const workspaceDir = "vimkata"

// Files are the deterministic workspace paths for a session. Paths are
// stable across sessions, so stale artifacts from a crashed run must be
// cleared before launch.
type Files struct {
	Dir     string
	Buffer  string
	Target  string
	Start   string
	Results string
	Script  string
}

// DefaultFiles returns the workspace layout under the process temp dir.
func DefaultFiles() Files {
	return FilesIn(filepath.Join(os.TempDir(), workspaceDir))
}

// FilesIn returns the workspace layout rooted at dir.
func FilesIn(dir string) Files {
	return Files{
		Dir:     dir,
		Buffer:  filepath.Join(dir, "challenge_buffer"),
		Target:  filepath.Join(dir, "challenge_target"),
		Start:   filepath.Join(dir, "challenge_start"),
		Results: filepath.Join(dir, "results"),
		Script:  filepath.Join(dir, "runtime.lua"),
	}
}

// Result is the telemetry collected from one completed session.
type Result struct {
	BufferMatches bool
	Keystrokes    int
	ElapsedSecs   int
	Keys          string
}

// Session drives one attempt through Prepare, the external editor run, and
// Collect. A retry is a fresh Session, never a resumption.
type Session struct {
	challenge *challenge.Challenge
	number    int
	editor    string
	files     Files
}

// New builds a session for one challenge attempt. The number is the global
// display number shown in the editor statusline.
func New(c *challenge.Challenge, number int, editor string) *Session {
	if editor == "" {
		editor = DefaultEditor
	}
	return &Session{
		challenge: c,
		number:    number,
		editor:    editor,
		files:     DefaultFiles(),
	}
}

// Prepare materializes the workspace: the editable buffer seeded with the
// start content, the read-only target copy, a pristine start backup, and
// the generated runtime script. Any results file left over from a previous
// session is removed so it cannot leak into this attempt.
func (s *Session) Prepare() error {
	if err := os.MkdirAll(s.files.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session workspace: %w", err)
	}
	writes := []struct {
		path    string
		content string
	}{
		{s.files.Buffer, s.challenge.Start.Content},
		{s.files.Target, s.challenge.Target.Content},
		{s.files.Start, s.challenge.Start.Content},
		{s.files.Script, buildScript(s.challenge, s.number, s.files)},
	}
	for _, w := range writes {
		if err := os.WriteFile(w.path, []byte(w.content), 0o644); err != nil {
			return fmt.Errorf("failed to write session file: %w", err)
		}
	}
	if err := os.Remove(s.files.Results); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale results: %w", err)
	}
	return nil
}

// Command builds the editor invocation: target split on top, read-only and
// permanently diffed against the editable buffer below, the runtime script
// loaded, and an autocmd that stops counting and quits as soon as the
// buffer is written.
func (s *Session) Command() *exec.Cmd {
	splitCmd := fmt.Sprintf(
		"split %s | setlocal readonly nomodifiable noswapfile buftype=nofile | "+
			"let &l:winbar = '  [TARGET]' | "+
			"diffthis | set diffopt+=context:99999 | setlocal wrap nocursorbind | "+
			"wincmd j | diffthis | set diffopt+=context:99999 | setlocal wrap nocursorbind",
		s.files.Target)
	autoExit := fmt.Sprintf(
		"autocmd BufWritePost %s lua _G._ks_stop(); vim.cmd('qall!')",
		s.files.Buffer)

	cmd := exec.Command(s.editor,
		"--cmd", "set noswapfile noundofile nobackup nowritebackup",
		"-c", splitCmd,
		"-c", "luafile "+s.files.Script,
		"-c", autoExit,
		s.files.Buffer,
	)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Collect reads back the final buffer and the results artifact after the
// editor has exited. Missing or partial telemetry degrades to zeros rather
// than failing: the buffer-match outcome is still worth keeping.
func (s *Session) Collect() (Result, error) {
	buf, err := os.ReadFile(s.files.Buffer)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read session buffer: %w", err)
	}
	keystrokes, elapsed, keys := readResults(s.files.Results)
	return Result{
		BufferMatches: Normalize(string(buf)) == Normalize(s.challenge.Target.Content),
		Keystrokes:    keystrokes,
		ElapsedSecs:   elapsed,
		Keys:          keys,
	}, nil
}

// readResults parses the three-line results artifact: keystroke count,
// elapsed seconds, raw key log. Missing or malformed lines default to
// zero/empty so a crash mid-session still yields a usable attempt.
func readResults(path string) (keystrokes, elapsed int, keys string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, ""
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 {
		keystrokes, _ = strconv.Atoi(strings.TrimSpace(lines[0]))
	}
	if len(lines) > 1 {
		elapsed, _ = strconv.Atoi(strings.TrimSpace(lines[1]))
	}
	if len(lines) > 2 {
		keys = lines[2]
	}
	return keystrokes, elapsed, keys
}

// Normalize canonicalizes buffer text for equality comparison: trailing
// whitespace is trimmed from every line and trailing blank lines are
// stripped, so a buffer written without a final newline compares equal to
// one written with it.
func Normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	out := strings.Join(lines, "\n")
	return strings.TrimRight(out, "\n")
}
