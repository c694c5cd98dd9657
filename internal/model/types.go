// Package model defines shared data structures.
package model

import "time"

// AttemptLog captures one collected session for the journal, whether or
// not the buffer matched.
type AttemptLog struct {
	ChallengeID string
	Version     string
	Topic       string
	Grade       string // empty for freestyle or failed attempts
	Par         int
	Keystrokes  int
	ElapsedSecs int
	Keys        string
	Matched     bool
	Freestyle   bool
	RecordedAt  time.Time
}

// StatsConfig defines filters for the stats surface.
type StatsConfig struct {
	Topic string
	Since *time.Time
	Last  int
	// Window is the moving-average window for learning curves.
	Window int
}

// AttemptAggregate summarizes one journaled attempt for reporting.
type AttemptAggregate struct {
	AttemptID   int64
	ChallengeID string
	Topic       string
	Grade       string
	Par         int
	Keystrokes  int
	ElapsedSecs int
	Matched     bool
	RecordedAt  time.Time
}

// GradeTally counts attempts that earned one grade.
type GradeTally struct {
	Grade string
	Count int
}
