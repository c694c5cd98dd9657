package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/vimkata/internal/challenge"
	"github.com/verte-zerg/vimkata/internal/journal"
	"github.com/verte-zerg/vimkata/internal/model"
	"github.com/verte-zerg/vimkata/internal/session"
	"github.com/verte-zerg/vimkata/internal/state"
)

type screen int

const (
	screenHub screen = iota
	screenPicker
	screenResult
	screenHelp
)

// Options wires the trainer UI to its collaborators.
type Options struct {
	Topics    []challenge.Topic
	State     *state.GameState
	Journal   *journal.Journal // nil disables the attempt journal
	SavePath  string
	Editor    string
	UnlockAll bool
}

// sessionFinishedMsg arrives when the external editor process exits and
// bubbletea has reclaimed the terminal.
type sessionFinishedMsg struct {
	err error
}

// Model implements the Bubble Tea trainer UI.
type Model struct {
	topics    []challenge.Topic
	state     *state.GameState
	journal   *journal.Journal
	savePath  string
	editor    string
	unlockAll bool

	width  int
	height int

	scr        screen
	helpReturn screen

	hubItems   []hubItem
	hubEntries []int
	hubIndex   int
	hubNav     nav

	topicIdx    int
	topicOffset int
	pickerIndex int
	pickerNav   nav

	active        *session.Session
	current       *challenge.Challenge
	currentNumber int
	result        session.Result
	resultGrade   *challenge.Grade
	prevBest      int
	prevBestOK    bool
	sessionErr    error
}

// NewModel constructs the trainer UI model.
func NewModel(opts Options) *Model {
	m := &Model{
		topics:    opts.Topics,
		state:     opts.State,
		journal:   opts.Journal,
		savePath:  opts.SavePath,
		editor:    opts.Editor,
		unlockAll: opts.UnlockAll,
	}
	m.buildHubItems()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case sessionFinishedMsg:
		m.finishSession(msg.err)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenHub:
			return m.updateHub(msg)
		case screenPicker:
			return m.updatePicker(msg)
		case screenResult:
			return m.updateResult(msg)
		case screenHelp:
			m.scr = m.helpReturn
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.scr {
	case screenPicker:
		return m.viewPicker()
	case screenResult:
		return m.viewResult()
	case screenHelp:
		return m.viewHelp()
	default:
		return m.viewHub()
	}
}

func (m *Model) listHeight() int {
	h := m.height - 8
	if h < 4 {
		h = 4
	}
	return h
}

// startSession prepares the workspace and hands the terminal to the
// external editor. This is the single blocking step of the whole program.
func (m *Model) startSession(c *challenge.Challenge, number int) tea.Cmd {
	m.current = c
	m.currentNumber = number
	m.sessionErr = nil
	m.resultGrade = nil
	m.result = session.Result{}
	m.prevBest, m.prevBestOK = m.state.BestKeystrokes(c.ID)

	s := session.New(c, number, m.editor)
	if err := s.Prepare(); err != nil {
		m.sessionErr = err
		m.scr = screenResult
		return nil
	}
	m.active = s
	return tea.ExecProcess(s.Command(), func(err error) tea.Msg {
		return sessionFinishedMsg{err: err}
	})
}

// finishSession collects telemetry, grades the attempt, and merges it into
// the progress state. Runs on the application goroutine right after the
// editor exits; there is no concurrent access to the state.
func (m *Model) finishSession(runErr error) {
	s := m.active
	m.active = nil
	m.scr = screenResult

	if runErr != nil {
		// Launch failure or failure exit status: recoverable, the user
		// may retry. No result is recorded.
		m.sessionErr = fmt.Errorf("editor session failed: %w", runErr)
		return
	}
	result, err := s.Collect()
	if err != nil {
		m.sessionErr = err
		return
	}
	m.result = result

	c := m.current
	freestyle := c.IsFreestyle()
	if result.BufferMatches {
		if freestyle {
			m.state.RecordFreestyleResult(c.ID, result.Keystrokes, result.ElapsedSecs, result.Keys, c.Version)
		} else {
			grade := c.Score(result.Keystrokes)
			m.resultGrade = &grade
			m.state.RecordResult(c.ID, grade, result.Keystrokes, result.ElapsedSecs, result.Keys, c.Version)
		}
	}
	if err := m.state.Save(m.savePath); err != nil {
		logErrf("failed to save progress: %v\n", err)
	}
	m.journalAttempt(c, result)
}

func (m *Model) journalAttempt(c *challenge.Challenge, result session.Result) {
	if m.journal == nil {
		return
	}
	grade := ""
	if m.resultGrade != nil {
		grade = m.resultGrade.String()
	}
	topicName := ""
	if m.topicIdx >= 0 && m.topicIdx < len(m.topics) {
		topicName = m.topics[m.topicIdx].Name
	}
	_, err := m.journal.InsertAttempt(context.Background(), model.AttemptLog{
		ChallengeID: c.ID,
		Version:     c.Version,
		Topic:       topicName,
		Grade:       grade,
		Par:         c.ParKeystrokes,
		Keystrokes:  result.Keystrokes,
		ElapsedSecs: result.ElapsedSecs,
		Keys:        result.Keys,
		Matched:     result.BufferMatches,
		Freestyle:   c.IsFreestyle(),
		RecordedAt:  time.Now(),
	})
	if err != nil {
		logErrf("failed to journal attempt: %v\n", err)
	}
}

// challengeOffset is the number of challenges in all preceding topics,
// used for globally unique display numbers.
func (m *Model) challengeOffset(topicIdx int) int {
	offset := 0
	id := m.topics[topicIdx].ID
	for _, t := range m.topics {
		if t.ID < id {
			offset += len(t.Challenges)
		}
	}
	return offset
}

// categoryUnlocked reports whether a category's topics are playable.
// A category unlocks once every challenge of the previous category is
// completed; beginner and freestyle content is always open.
func (m *Model) categoryUnlocked(cat challenge.Category) bool {
	if m.unlockAll {
		return true
	}
	var prev challenge.Category
	switch cat {
	case challenge.CategoryBeginner, challenge.CategoryFreestyle:
		return true
	case challenge.CategoryIntermediate:
		prev = challenge.CategoryBeginner
	case challenge.CategoryAdvanced:
		prev = challenge.CategoryIntermediate
	default:
		prev = challenge.CategoryAdvanced
	}
	for _, t := range m.topics {
		if challenge.CategoryForTopic(t.ID) != prev || len(t.Challenges) == 0 {
			continue
		}
		for _, c := range t.Challenges {
			if _, ok := m.state.BestGrade(c.ID); !ok {
				return false
			}
		}
	}
	return true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
