// Package journal handles SQLite persistence of attempt telemetry.
//
// The journal is an append-only record of every collected session and
// feeds the stats surface. It is deliberately separate from the progress
// save file: losing the journal loses history browsing, never scores.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/vimkata/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Journal wraps SQLite access for attempt telemetry.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database and applies migrations.
func Open(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			challenge_id TEXT NOT NULL,
			version TEXT NOT NULL,
			topic TEXT NOT NULL,
			grade TEXT NOT NULL,
			par INTEGER NOT NULL,
			keystrokes INTEGER NOT NULL,
			elapsed_secs INTEGER NOT NULL,
			keys TEXT NOT NULL,
			matched INTEGER NOT NULL,
			freestyle INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_recorded_at ON attempts(recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_challenge_id ON attempts(challenge_id);`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt appends one collected attempt.
func (j *Journal) InsertAttempt(ctx context.Context, a model.AttemptLog) (int64, error) {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO attempts (challenge_id, version, topic, grade, par, keystrokes, elapsed_secs, keys, matched, freestyle, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ChallengeID,
		a.Version,
		a.Topic,
		a.Grade,
		a.Par,
		a.Keystrokes,
		a.ElapsedSecs,
		a.Keys,
		boolToInt(a.Matched),
		boolToInt(a.Freestyle),
		a.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempt aggregates filtered by stats config, oldest
// first.
func (j *Journal) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.AttemptAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Topic != "" {
		clauses = append(clauses, "topic = ?")
		args = append(args, cfg.Topic)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, challenge_id, topic, grade, par, keystrokes, elapsed_secs, matched, recorded_at
		FROM attempts
		WHERE %s
		ORDER BY recorded_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.AttemptAggregate
	for rows.Next() {
		var agg model.AttemptAggregate
		var matched int
		var recordedAt string
		if err := rows.Scan(&agg.AttemptID, &agg.ChallengeID, &agg.Topic, &agg.Grade, &agg.Par, &agg.Keystrokes, &agg.ElapsedSecs, &matched, &recordedAt); err != nil {
			return nil, err
		}
		agg.Matched = matched != 0
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		agg.RecordedAt = parsed
		attempts = append(attempts, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}
	return attempts, nil
}

// Topics returns the distinct topics present in the journal, sorted.
func (j *Journal) Topics(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT DISTINCT topic FROM attempts ORDER BY topic ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
