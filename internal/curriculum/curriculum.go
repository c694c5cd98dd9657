// Package curriculum loads challenge definitions from a directory tree.
package curriculum

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

type topicSpec struct {
	id          int
	dir         string
	name        string
	description string
}

// Topic metadata. Challenge TOML files live in the named subdirectories.
var topics = []topicSpec{
	{1, "01_motions", "Advanced Motions", "f/t/;, %, [{, ]m, H/M/L, g;/g,"},
	{2, "02_text_objects", "Text Objects", `ci", da(, vit, ciw, cip`},
	{3, "03_registers", "Registers", `"a-z, "0-9, "+, "., "_`},
	{4, "04_marks_jumps", "Marks & Jumps", "ma, `a, '', g;, Ctrl-O/I"},
	{5, "05_macros", "Macros", "qa, @a, @@, recursive macros, macro editing"},
	{6, "06_ex_commands", "Ex Commands", ":g, :s, :norm, ranges, :sort, :!"},
	{7, "07_advanced_combos", "Advanced Combos", "Combining all techniques"},
	{8, "08_legendary", "Legendary Combos", "The ultimate vim challenges"},
}

// Freestyle topics have no par and no grades, only personal-best tracking.
var freestyleTopics = []topicSpec{
	{100, "f01_refactoring", "Code Refactoring", "Rename, restructure, and clean up code"},
	{101, "f02_data_wrangling", "Data Wrangling", "Transform CSV, JSON, and tabular data"},
	{102, "f03_bug_fixing", "Bug Fixing", "Find and fix multiple bugs in code"},
	{103, "f04_pattern_power", "Pattern Power", "Repetitive transformations at scale"},
	{104, "f05_format_alchemy", "Format Alchemy", "Convert between data formats"},
	{105, "f06_legacy_cleanup", "Legacy Cleanup", "Modernize and clean messy legacy code"},
	{106, "f07_multi_edit", "Multi-Edit Mastery", "Complex edits across many locations"},
	{107, "f08_grand", "Grand Challenges", "Long, complex mixed-skill challenges"},
}

// Load reads every topic from the challenges directory. Unparseable
// challenge files are skipped with a warning; an empty or missing topic
// directory yields an empty topic.
func Load(dir string) []challenge.Topic {
	specs := append(append([]topicSpec{}, topics...), freestyleTopics...)
	out := make([]challenge.Topic, 0, len(specs))
	for _, spec := range specs {
		out = append(out, challenge.Topic{
			ID:          spec.id,
			Name:        spec.name,
			Description: spec.description,
			Challenges:  loadDir(filepath.Join(dir, spec.dir)),
		})
	}
	return out
}

// loadDir loads all .toml challenge files from one directory, in filename
// order.
func loadDir(dir string) []challenge.Challenge {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var challenges []challenge.Challenge
	for _, path := range paths {
		c, err := loadFile(path)
		if err != nil {
			logErrf("Warning: skipping %s: %v\n", path, err)
			continue
		}
		challenges = append(challenges, c)
	}
	return challenges
}

func loadFile(path string) (challenge.Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to read challenge: %w", err)
	}
	var c challenge.Challenge
	if err := toml.Unmarshal(data, &c); err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to parse challenge: %w", err)
	}
	if c.ID == "" {
		return challenge.Challenge{}, fmt.Errorf("challenge is missing an id")
	}
	// A reference solution overrides any authored par.
	if len(c.PerfectMoves) > 0 {
		par := 0
		for _, move := range c.PerfectMoves {
			par += challenge.CountKeystrokes(move)
		}
		c.ParKeystrokes = par
	}
	return c, nil
}

// DefaultDir resolves the challenges directory: bundled content next to the
// executable first, then the current directory.
func DefaultDir() string {
	if exe, err := os.Executable(); err == nil {
		bundled := filepath.Join(filepath.Dir(exe), "..", "share", "vimkata", "challenges")
		if _, err := os.Stat(bundled); err == nil {
			return bundled
		}
	}
	return "challenges"
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
