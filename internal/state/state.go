// Package state holds the durable per-challenge progress record.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

// historyLimit bounds the per-challenge attempt leaderboard.
const historyLimit = 10

// SaveFileError reports an unreadable or corrupt save file together with
// the offending path, so the user can decide what to do with it instead of
// silently losing progress.
type SaveFileError struct {
	Path string
	Err  error
}

func (e *SaveFileError) Error() string {
	return fmt.Sprintf("failed to load save file %q: %v", e.Path, e.Err)
}

func (e *SaveFileError) Unwrap() error {
	return e.Err
}

// BestResult is the authoritative best score for one challenge.
type BestResult struct {
	Grade      challenge.Grade `json:"grade"`
	Keystrokes int             `json:"keystrokes"`
	TimeSecs   int             `json:"time_secs"`
	Version    string          `json:"version"`
	Stale      bool            `json:"stale,omitempty"`
}

// AttemptRecord is one completed attempt kept in the bounded history.
type AttemptRecord struct {
	Grade      challenge.Grade `json:"grade"`
	Keystrokes int             `json:"keystrokes"`
	TimeSecs   int             `json:"time_secs"`
	Keys       string          `json:"keys,omitempty"`
}

// Stats accumulates across every attempt ever recorded.
type Stats struct {
	TotalKeystrokes     uint64 `json:"total_keystrokes"`
	ChallengesAttempted int    `json:"challenges_attempted"`
}

// GameState is the aggregate progress root. Exactly one instance is live
// per process and it is only ever mutated on the application goroutine.
type GameState struct {
	Challenges map[string]BestResult      `json:"challenges"`
	Stats      Stats                      `json:"stats"`
	History    map[string][]AttemptRecord `json:"history,omitempty"`
}

// New returns an empty game state.
func New() *GameState {
	return &GameState{
		Challenges: map[string]BestResult{},
		History:    map[string][]AttemptRecord{},
	}
}

// UnmarshalJSON accepts both the current schema and the legacy one where
// the grade field was named "medal". Grade values themselves handle the
// legacy rank names.
func (b *BestResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Grade      *challenge.Grade `json:"grade"`
		Medal      *challenge.Grade `json:"medal"`
		Keystrokes int              `json:"keystrokes"`
		TimeSecs   int              `json:"time_secs"`
		Version    string           `json:"version"`
		Stale      bool             `json:"stale"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Grade != nil:
		b.Grade = *aux.Grade
	case aux.Medal != nil:
		b.Grade = *aux.Medal
	default:
		return fmt.Errorf("best result is missing a grade")
	}
	b.Keystrokes = aux.Keystrokes
	b.TimeSecs = aux.TimeSecs
	b.Version = aux.Version
	b.Stale = aux.Stale
	return nil
}

// UnmarshalJSON accepts the legacy "medal" field name, like BestResult.
func (a *AttemptRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Grade      *challenge.Grade `json:"grade"`
		Medal      *challenge.Grade `json:"medal"`
		Keystrokes int              `json:"keystrokes"`
		TimeSecs   int              `json:"time_secs"`
		Keys       string           `json:"keys"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Grade != nil:
		a.Grade = *aux.Grade
	case aux.Medal != nil:
		a.Grade = *aux.Medal
	default:
		return fmt.Errorf("attempt record is missing a grade")
	}
	a.Keystrokes = aux.Keystrokes
	a.TimeSecs = aux.TimeSecs
	a.Keys = aux.Keys
	return nil
}

// RecordResult merges a graded attempt. The best result is replaced when no
// prior exists, the prior is stale, the grade outranks it, or the grade ties
// with strictly fewer keystrokes. A stale prior also resets the attempt
// history: its baseline is no longer comparable. Global stats and the
// bounded history accumulate regardless of improvement.
func (s *GameState) RecordResult(id string, grade challenge.Grade, keystrokes, timeSecs int, keys, version string) {
	prior, hasPrior := s.Challenges[id]
	wasStale := hasPrior && prior.Stale
	improved := !hasPrior || prior.Stale ||
		grade.Outranks(prior.Grade) ||
		(grade == prior.Grade && keystrokes < prior.Keystrokes)
	if improved {
		s.Challenges[id] = BestResult{
			Grade:      grade,
			Keystrokes: keystrokes,
			TimeSecs:   timeSecs,
			Version:    version,
		}
		if wasStale {
			delete(s.History, id)
		}
	}
	s.Stats.TotalKeystrokes += uint64(keystrokes)
	s.Stats.ChallengesAttempted++
	s.appendHistory(id, AttemptRecord{
		Grade:      grade,
		Keystrokes: keystrokes,
		TimeSecs:   timeSecs,
		Keys:       keys,
	})
}

// RecordFreestyleResult merges a freestyle attempt. Improvement is judged
// by keystrokes alone; the stored grade is a placeholder and is never
// surfaced for freestyle challenges.
func (s *GameState) RecordFreestyleResult(id string, keystrokes, timeSecs int, keys, version string) {
	prior, hasPrior := s.Challenges[id]
	wasStale := hasPrior && prior.Stale
	improved := !hasPrior || prior.Stale || keystrokes < prior.Keystrokes
	if improved {
		s.Challenges[id] = BestResult{
			Grade:      challenge.GradeF,
			Keystrokes: keystrokes,
			TimeSecs:   timeSecs,
			Version:    version,
		}
		if wasStale {
			delete(s.History, id)
		}
	}
	s.Stats.TotalKeystrokes += uint64(keystrokes)
	s.Stats.ChallengesAttempted++
	s.appendHistory(id, AttemptRecord{
		Grade:      challenge.GradeF,
		Keystrokes: keystrokes,
		TimeSecs:   timeSecs,
		Keys:       keys,
	})
}

func (s *GameState) appendHistory(id string, attempt AttemptRecord) {
	if s.History == nil {
		s.History = map[string][]AttemptRecord{}
	}
	history := append(s.History[id], attempt)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Keystrokes < history[j].Keystrokes
	})
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	s.History[id] = history
}

// MarkStale flags best results whose recorded version no longer matches the
// current challenge content. Ids absent from the current set are left alone:
// staleness only applies to content that still exists but has changed.
// Runs once at startup, before any new attempts.
func (s *GameState) MarkStale(challenges []challenge.Challenge) {
	current := make(map[string]string, len(challenges))
	for _, c := range challenges {
		current[c.ID] = c.Version
	}
	for id, best := range s.Challenges {
		if version, ok := current[id]; ok && best.Version != version {
			best.Stale = true
			s.Challenges[id] = best
		}
	}
}

// IsStale reports whether the challenge has a stale best result.
func (s *GameState) IsStale(id string) bool {
	best, ok := s.Challenges[id]
	return ok && best.Stale
}

// StaleCount returns the number of stale best results.
func (s *GameState) StaleCount() int {
	count := 0
	for _, best := range s.Challenges {
		if best.Stale {
			count++
		}
	}
	return count
}

// BestGrade returns the best grade for a challenge, if attempted.
func (s *GameState) BestGrade(id string) (challenge.Grade, bool) {
	best, ok := s.Challenges[id]
	return best.Grade, ok
}

// BestKeystrokes returns the best keystroke count for a challenge, if
// attempted.
func (s *GameState) BestKeystrokes(id string) (int, bool) {
	best, ok := s.Challenges[id]
	return best.Keystrokes, ok
}

// Attempts returns the recorded history for a challenge, best first.
func (s *GameState) Attempts(id string) []AttemptRecord {
	return s.History[id]
}

// Save writes the state as JSON to path, atomically via a sibling temp file.
func (s *GameState) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "save-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// Load reads the state from path. A missing file yields a fresh default;
// anything else that goes wrong is surfaced as a SaveFileError so progress
// is never silently discarded.
func Load(path string) (*GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, &SaveFileError{Path: path, Err: err}
	}
	loaded := New()
	if err := json.Unmarshal(data, loaded); err != nil {
		return nil, &SaveFileError{Path: path, Err: err}
	}
	if loaded.Challenges == nil {
		loaded.Challenges = map[string]BestResult{}
	}
	if loaded.History == nil {
		loaded.History = map[string][]AttemptRecord{}
	}
	return loaded, nil
}
