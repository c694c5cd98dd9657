package state

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

func TestRecordResultStoresBest(t *testing.T) {
	s := New()
	s.RecordResult("motion_001", challenge.GradeC, 12, 30, "jf8cw3000", "1.0.0")
	grade, ok := s.BestGrade("motion_001")
	if !ok || grade != challenge.GradeC {
		t.Fatalf("BestGrade = %v, %v", grade, ok)
	}
}

func TestRecordResultKeepsBetterGrade(t *testing.T) {
	s := New()
	s.RecordResult("motion_001", challenge.GradeC, 12, 30, "jf8cw3000", "1.0.0")
	s.RecordResult("motion_001", challenge.GradeB, 7, 15, "jcw3000", "1.0.0")
	if grade, _ := s.BestGrade("motion_001"); grade != challenge.GradeB {
		t.Fatalf("BestGrade = %v, want B", grade)
	}
}

func TestRecordResultNeverDowngrades(t *testing.T) {
	s := New()
	s.RecordResult("motion_001", challenge.GradeB, 7, 15, "jcw3000", "1.0.0")
	s.RecordResult("motion_001", challenge.GradeD, 30, 60, "jjjjcw3000", "1.0.0")
	if grade, _ := s.BestGrade("motion_001"); grade != challenge.GradeB {
		t.Fatalf("BestGrade = %v, want B", grade)
	}
	if ks, _ := s.BestKeystrokes("motion_001"); ks != 7 {
		t.Fatalf("BestKeystrokes = %d, want 7", ks)
	}
}

func TestRecordResultTieBreaksOnKeystrokes(t *testing.T) {
	s := New()
	s.RecordResult("motion_001", challenge.GradeB, 12, 30, "jf8cw3000", "1.0.0")
	s.RecordResult("motion_001", challenge.GradeB, 9, 20, "jcw3000", "1.0.0")
	if ks, _ := s.BestKeystrokes("motion_001"); ks != 9 {
		t.Fatalf("BestKeystrokes = %d, want 9", ks)
	}
	// Equal grade, equal keystrokes: no replacement.
	s.RecordResult("motion_001", challenge.GradeB, 9, 5, "other", "1.0.0")
	if s.Challenges["motion_001"].TimeSecs != 20 {
		t.Fatalf("equal result should not replace the stored best")
	}
}

func TestStatsAccumulateRegardless(t *testing.T) {
	s := New()
	s.RecordResult("m001", challenge.GradeB, 10, 20, "keys1", "1")
	s.RecordResult("m001", challenge.GradeF, 50, 25, "keys2", "1")
	if s.Stats.TotalKeystrokes != 60 {
		t.Fatalf("TotalKeystrokes = %d, want 60", s.Stats.TotalKeystrokes)
	}
	if s.Stats.ChallengesAttempted != 2 {
		t.Fatalf("ChallengesAttempted = %d, want 2", s.Stats.ChallengesAttempted)
	}
}

func TestHistoryBoundedAndSorted(t *testing.T) {
	s := New()
	for i := 0; i < 15; i++ {
		s.RecordResult("m001", challenge.GradeF, 100-i, 10, "keys", "1")
	}
	history := s.Attempts("m001")
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	if !sort.SliceIsSorted(history, func(i, j int) bool {
		return history[i].Keystrokes < history[j].Keystrokes
	}) {
		t.Fatalf("history is not sorted ascending by keystrokes")
	}
	if history[0].Keystrokes != 86 {
		t.Fatalf("best attempt = %d keystrokes, want 86", history[0].Keystrokes)
	}
}

func TestFreestyleImprovesOnKeystrokesOnly(t *testing.T) {
	s := New()
	s.RecordFreestyleResult("f001", 40, 60, "keys", "1")
	s.RecordFreestyleResult("f001", 55, 30, "keys", "1")
	if ks, _ := s.BestKeystrokes("f001"); ks != 40 {
		t.Fatalf("BestKeystrokes = %d, want 40", ks)
	}
	s.RecordFreestyleResult("f001", 22, 90, "keys", "1")
	if ks, _ := s.BestKeystrokes("f001"); ks != 22 {
		t.Fatalf("BestKeystrokes = %d, want 22", ks)
	}
}

func TestMarkStale(t *testing.T) {
	s := New()
	s.RecordResult("m001", challenge.GradeA, 5, 10, "keys", "1.0.0")
	s.RecordResult("gone", challenge.GradeA, 5, 10, "keys", "1.0.0")
	current := []challenge.Challenge{
		{ID: "m001", Version: "2.0.0"},
	}
	s.MarkStale(current)
	if !s.IsStale("m001") {
		t.Fatalf("version change should mark m001 stale")
	}
	if s.IsStale("gone") {
		t.Fatalf("removed challenge must not be marked stale")
	}
	if s.StaleCount() != 1 {
		t.Fatalf("StaleCount = %d, want 1", s.StaleCount())
	}
}

func TestMarkStaleSameVersionUntouched(t *testing.T) {
	s := New()
	s.RecordResult("m001", challenge.GradeA, 5, 10, "keys", "1.0.0")
	s.MarkStale([]challenge.Challenge{{ID: "m001", Version: "1.0.0"}})
	if s.IsStale("m001") {
		t.Fatalf("matching version must not be stale")
	}
}

func TestStaleBestAlwaysOverwritten(t *testing.T) {
	s := New()
	s.RecordResult("m001", challenge.GradeA, 5, 10, "old", "1.0.0")
	s.RecordResult("m001", challenge.GradeB, 9, 10, "old2", "1.0.0")
	s.MarkStale([]challenge.Challenge{{ID: "m001", Version: "2.0.0"}})

	// A worse grade still replaces a stale best, and the history restarts.
	s.RecordResult("m001", challenge.GradeD, 30, 40, "new", "2.0.0")
	best := s.Challenges["m001"]
	if best.Grade != challenge.GradeD || best.Stale {
		t.Fatalf("stale best not overwritten: %+v", best)
	}
	if best.Version != "2.0.0" {
		t.Fatalf("best version = %q, want 2.0.0", best.Version)
	}
	history := s.Attempts("m001")
	if len(history) != 1 || history[0].Keys != "new" {
		t.Fatalf("history should contain only the new attempt: %+v", history)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s := New()
	s.RecordResult("m001", challenge.GradeA, 5, 10, "jcw", "1.0.0")
	s.RecordFreestyleResult("f001", 33, 20, "keys", "1.0.0")
	s.MarkStale([]challenge.Challenge{{ID: "m001", Version: "2.0.0"}})
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if grade, ok := loaded.BestGrade("m001"); !ok || grade != challenge.GradeA {
		t.Fatalf("loaded BestGrade = %v, %v", grade, ok)
	}
	if !loaded.IsStale("m001") {
		t.Fatalf("stale flag lost in round trip")
	}
	if ks, _ := loaded.BestKeystrokes("f001"); ks != 33 {
		t.Fatalf("loaded freestyle best = %d, want 33", ks)
	}
	if loaded.Stats.ChallengesAttempted != 2 {
		t.Fatalf("loaded attempts = %d, want 2", loaded.Stats.ChallengesAttempted)
	}
}

func TestLoadMissingFileDefaults(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Challenges) != 0 || loaded.Stats.ChallengesAttempted != 0 {
		t.Fatalf("missing file should yield a fresh state")
	}
}

func TestLoadCorruptFileFailsLoudly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	var sfe *SaveFileError
	if !errors.As(err, &sfe) {
		t.Fatalf("expected SaveFileError, got %v", err)
	}
	if sfe.Path != path {
		t.Fatalf("error path = %q, want %q", sfe.Path, path)
	}
}

func TestLoadLegacyMedalSchema(t *testing.T) {
	legacy := `{
  "challenges": {
    "motion_001": {"medal": "Gold", "keystrokes": 9, "time_secs": 21},
    "motion_002": {"medal": "Perfect", "keystrokes": 4}
  },
  "stats": {"total_keystrokes": 13, "challenges_attempted": 2},
  "history": {
    "motion_001": [{"medal": "Gold", "keystrokes": 9, "time_secs": 21, "keys": "jcw"}]
  }
}`
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if grade, _ := loaded.BestGrade("motion_001"); grade != challenge.GradeB {
		t.Fatalf("legacy Gold = %v, want B", grade)
	}
	if grade, _ := loaded.BestGrade("motion_002"); grade != challenge.GradeA {
		t.Fatalf("legacy Perfect = %v, want A", grade)
	}
	history := loaded.Attempts("motion_001")
	if len(history) != 1 || history[0].Grade != challenge.GradeB {
		t.Fatalf("legacy history not mapped: %+v", history)
	}

	// Round trip: saving rewrites the current schema and must load again.
	if err := loaded.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if grade, _ := again.BestGrade("motion_001"); grade != challenge.GradeB {
		t.Fatalf("reloaded grade = %v, want B", grade)
	}
}
