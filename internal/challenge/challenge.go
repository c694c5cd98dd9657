// Package challenge defines the challenge model and the grading engine.
package challenge

import "fmt"

// BufferContent holds the plain-text content of a start or target buffer.
type BufferContent struct {
	Content string `toml:"content"`
}

// Challenge is one start/target editing exercise. Immutable once loaded.
type Challenge struct {
	ID             string        `toml:"id"`
	Version        string        `toml:"version"`
	Title          string        `toml:"title"`
	Topic          string        `toml:"topic"`
	Difficulty     int           `toml:"difficulty"`
	Hint           string        `toml:"hint"`
	DetailedHint   string        `toml:"detailed_hint"`
	ParKeystrokes  int           `toml:"par_keystrokes"`
	PerfectMoves   []string      `toml:"perfect_moves"`
	FocusedActions []string      `toml:"focused_actions"`
	Start          BufferContent `toml:"start"`
	Target         BufferContent `toml:"target"`
}

// Topic groups challenges that train one skill area.
type Topic struct {
	ID          int
	Name        string
	Description string
	Challenges  []Challenge
}

// Grade is the discrete rank of a completed attempt, best to worst.
type Grade int

// Grades in rank order. Lower value outranks higher.
const (
	GradeA Grade = iota
	GradeB
	GradeC
	GradeD
	GradeE
	GradeF
)

// Grades lists all grades best to worst.
var Grades = [6]Grade{GradeA, GradeB, GradeC, GradeD, GradeE, GradeF}

func (g Grade) String() string {
	switch g {
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	case GradeD:
		return "D"
	case GradeE:
		return "E"
	default:
		return "F"
	}
}

// Outranks reports whether g is a strictly better grade than other.
func (g Grade) Outranks(other Grade) bool {
	return g < other
}

// MarshalJSON encodes the grade as its display letter.
func (g Grade) MarshalJSON() ([]byte, error) {
	return []byte(`"` + g.String() + `"`), nil
}

// UnmarshalJSON decodes a grade letter. Legacy medal names from old save
// files (Perfect/Gold/Silver/Bronze) map onto A-D.
func (g *Grade) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	switch s {
	case "A", "Perfect":
		*g = GradeA
	case "B", "Gold":
		*g = GradeB
	case "C", "Silver":
		*g = GradeC
	case "D", "Bronze":
		*g = GradeD
	case "E":
		*g = GradeE
	case "F":
		*g = GradeF
	default:
		return fmt.Errorf("unknown grade %q", s)
	}
	return nil
}

// Grading thresholds as tenths of par. Integer math keeps the cutoffs
// bit-exact across platforms; these values are shown to the user in-session.
var gradeTenths = map[Grade]int{
	GradeA: 10,
	GradeB: 14,
	GradeC: 18,
	GradeD: 24,
	GradeE: 28,
	GradeF: 32,
}

// IsFreestyle reports whether this challenge has no par. Freestyle
// challenges are scored by personal-best keystrokes only.
func (c *Challenge) IsFreestyle() bool {
	return c.ParKeystrokes == 0 && len(c.PerfectMoves) == 0
}

// Score grades a completed attempt against par. Always assigns a grade;
// anything above the E threshold is an F. Only meaningful when par > 0.
func (c *Challenge) Score(keystrokes int) Grade {
	for _, g := range Grades[:5] {
		if keystrokes <= c.Threshold(g) {
			return g
		}
	}
	return GradeF
}

// Threshold returns the maximum keystroke count that still earns the grade.
// Exact inverse of Score for grades A-E; the F value is display-only.
func (c *Challenge) Threshold(g Grade) int {
	return c.ParKeystrokes * gradeTenths[g] / 10
}

// Category buckets topics for the hub display.
type Category int

// Categories in display order.
const (
	CategoryBeginner Category = iota
	CategoryIntermediate
	CategoryAdvanced
	CategoryLegendary
	CategoryFreestyle
)

// Categories lists all categories in display order.
var Categories = [5]Category{
	CategoryBeginner,
	CategoryIntermediate,
	CategoryAdvanced,
	CategoryLegendary,
	CategoryFreestyle,
}

// CategoryForTopic maps a topic id onto its category.
func CategoryForTopic(id int) Category {
	switch {
	case id == 1 || id == 2:
		return CategoryBeginner
	case id == 3 || id == 4:
		return CategoryIntermediate
	case id >= 5 && id <= 7:
		return CategoryAdvanced
	case id >= 100 && id <= 107:
		return CategoryFreestyle
	default:
		return CategoryLegendary
	}
}

func (c Category) String() string {
	switch c {
	case CategoryBeginner:
		return "BEGINNER"
	case CategoryIntermediate:
		return "INTERMEDIATE"
	case CategoryAdvanced:
		return "ADVANCED"
	case CategoryLegendary:
		return "LEGENDARY"
	default:
		return "FREESTYLE"
	}
}
