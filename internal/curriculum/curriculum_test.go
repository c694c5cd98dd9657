package curriculum

import (
	"os"
	"path/filepath"
	"testing"
)

const validChallenge = `
id = "motion_001"
version = "1.0.0"
title = "Seek and Replace"
topic = "motions"
difficulty = 1
hint = "Use f/F to jump to characters"
par_keystrokes = 8

[start]
content = "The quick brown fox"

[target]
content = "The quick brown cat"
`

const perfectMovesChallenge = `
id = "motion_002"
version = "1.0.0"
title = "Derived Par"
topic = "motions"
difficulty = 1
hint = "hint"
perfect_moves = ["jf8cw3000<Esc>", "<C-r>a"]

[start]
content = "a"

[target]
content = "b"
`

func writeTopic(t *testing.T, root, topicDir string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, topicDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestLoadTopics(t *testing.T) {
	root := t.TempDir()
	writeTopic(t, root, "01_motions", map[string]string{
		"002_second.toml": validChallenge,
		"001_first.toml":  perfectMovesChallenge,
		"notes.txt":       "ignored",
	})

	loaded := Load(root)
	if len(loaded) != 16 {
		t.Fatalf("expected 16 topics, got %d", len(loaded))
	}
	motions := loaded[0]
	if motions.ID != 1 || motions.Name != "Advanced Motions" {
		t.Fatalf("unexpected first topic: %+v", motions)
	}
	if len(motions.Challenges) != 2 {
		t.Fatalf("expected 2 challenges, got %d", len(motions.Challenges))
	}
	// Filename order, not authored order.
	if motions.Challenges[0].ID != "motion_002" || motions.Challenges[1].ID != "motion_001" {
		t.Fatalf("unexpected challenge order: %s, %s",
			motions.Challenges[0].ID, motions.Challenges[1].ID)
	}
	for _, topic := range loaded[1:] {
		if len(topic.Challenges) != 0 {
			t.Fatalf("topic %d should be empty", topic.ID)
		}
	}
}

func TestLoadDerivesParFromPerfectMoves(t *testing.T) {
	root := t.TempDir()
	writeTopic(t, root, "01_motions", map[string]string{
		"001.toml": perfectMovesChallenge,
	})
	loaded := Load(root)
	c := loaded[0].Challenges[0]
	// "jf8cw3000<Esc>" is 10 keystrokes, "<C-r>a" is 2.
	if c.ParKeystrokes != 12 {
		t.Fatalf("derived par = %d, want 12", c.ParKeystrokes)
	}
	if c.IsFreestyle() {
		t.Fatalf("challenge with perfect_moves must not be freestyle")
	}
}

func TestLoadSkipsUnparseableFiles(t *testing.T) {
	root := t.TempDir()
	writeTopic(t, root, "01_motions", map[string]string{
		"001_good.toml":   validChallenge,
		"002_broken.toml": "id = not valid toml [",
		"003_no_id.toml":  "version = \"1\"\n[start]\ncontent = \"a\"\n[target]\ncontent = \"b\"\n",
	})
	loaded := Load(root)
	if len(loaded[0].Challenges) != 1 {
		t.Fatalf("expected 1 challenge after skipping, got %d", len(loaded[0].Challenges))
	}
	if loaded[0].Challenges[0].ID != "motion_001" {
		t.Fatalf("wrong surviving challenge: %s", loaded[0].Challenges[0].ID)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	loaded := Load(filepath.Join(t.TempDir(), "nowhere"))
	if len(loaded) != 16 {
		t.Fatalf("expected 16 empty topics, got %d", len(loaded))
	}
	for _, topic := range loaded {
		if len(topic.Challenges) != 0 {
			t.Fatalf("expected no challenges for topic %d", topic.ID)
		}
	}
}
