package challenge

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
)

func sampleChallenge() Challenge {
	return Challenge{
		ID:            "motion_001",
		Version:       "1.0.0",
		Title:         "Test Challenge",
		Topic:         "motions",
		Difficulty:    1,
		Hint:          "Use f to find",
		DetailedHint:  "Try 3fw",
		ParKeystrokes: 10,
		Start:         BufferContent{Content: "hello world"},
		Target:        BufferContent{Content: "hello rust"},
	}
}

func TestScoreBuckets(t *testing.T) {
	c := sampleChallenge()
	cases := []struct {
		keystrokes int
		want       Grade
	}{
		{7, GradeA},
		{10, GradeA},
		{11, GradeB},
		{14, GradeB},
		{15, GradeC},
		{18, GradeC},
		{19, GradeD},
		{24, GradeD},
		{25, GradeE},
		{28, GradeE},
		{29, GradeF},
		{100, GradeF},
	}
	for _, tc := range cases {
		if got := c.Score(tc.keystrokes); got != tc.want {
			t.Fatalf("Score(%d) = %v, want %v", tc.keystrokes, got, tc.want)
		}
	}
}

func TestScoreMonotonic(t *testing.T) {
	c := sampleChallenge()
	prev := GradeA
	for k := 1; k <= 50; k++ {
		g := c.Score(k)
		if g.Outranks(prev) {
			t.Fatalf("Score(%d) = %v improves on Score(%d) = %v", k, g, k-1, prev)
		}
		prev = g
	}
}

func TestThresholds(t *testing.T) {
	c := sampleChallenge()
	want := map[Grade]int{
		GradeA: 10,
		GradeB: 14,
		GradeC: 18,
		GradeD: 24,
		GradeE: 28,
		GradeF: 32,
	}
	for g, th := range want {
		if got := c.Threshold(g); got != th {
			t.Fatalf("Threshold(%v) = %d, want %d", g, got, th)
		}
	}
}

func TestThresholdInverse(t *testing.T) {
	// Floor division collapses adjacent thresholds for small pars, and a
	// tie lands in the better bucket. The exact inverse law holds once all
	// five cutoffs are distinct; below that, Score at a threshold may only
	// beat the grade, never fall short of it.
	for par := 1; par <= 40; par++ {
		c := sampleChallenge()
		c.ParKeystrokes = par
		// F has no upper bound, so the inverse law covers A-E.
		for _, g := range Grades[:5] {
			got := c.Score(c.Threshold(g))
			if par >= 10 && got != g {
				t.Fatalf("par=%d: Score(Threshold(%v)) = %v", par, g, got)
			}
			if got != g && !got.Outranks(g) {
				t.Fatalf("par=%d: Score(Threshold(%v)) = %v is worse", par, g, got)
			}
		}
	}
}

func TestIsFreestyle(t *testing.T) {
	c := sampleChallenge()
	if c.IsFreestyle() {
		t.Fatalf("challenge with par should not be freestyle")
	}
	c.ParKeystrokes = 0
	if !c.IsFreestyle() {
		t.Fatalf("challenge without par should be freestyle")
	}
	c.PerfectMoves = []string{"jj"}
	if c.IsFreestyle() {
		t.Fatalf("perfect_moves implies a derivable par, not freestyle")
	}
}

func TestCountKeystrokes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"jf8cw3000", 9},
		{"jf8cw3000<Esc>", 10},
		{"<C-r>a", 2},
		{"<Esc>", 1},
		// <lt> is one token, then E, s, c, and a literal > follow.
		{"ciw<lt>Esc>", 8},
		{"<unterminated", 1},
		{"a<", 2},
	}
	for _, tc := range cases {
		if got := CountKeystrokes(tc.in); got != tc.want {
			t.Fatalf("CountKeystrokes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestGradeJSONRoundTrip(t *testing.T) {
	for _, g := range Grades {
		data, err := json.Marshal(g)
		if err != nil {
			t.Fatalf("marshal %v: %v", g, err)
		}
		var back Grade
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != g {
			t.Fatalf("round trip changed %v to %v", g, back)
		}
	}
}

func TestGradeLegacyMedalNames(t *testing.T) {
	legacy := map[string]Grade{
		"Perfect": GradeA,
		"Gold":    GradeB,
		"Silver":  GradeC,
		"Bronze":  GradeD,
	}
	for name, want := range legacy {
		var g Grade
		if err := json.Unmarshal([]byte(`"`+name+`"`), &g); err != nil {
			t.Fatalf("unmarshal %q: %v", name, err)
		}
		if g != want {
			t.Fatalf("legacy %q = %v, want %v", name, g, want)
		}
	}
	var g Grade
	if err := json.Unmarshal([]byte(`"Platinum"`), &g); err == nil {
		t.Fatalf("expected error for unknown grade name")
	}
}

func TestCategoryForTopic(t *testing.T) {
	cases := map[int]Category{
		1:   CategoryBeginner,
		2:   CategoryBeginner,
		3:   CategoryIntermediate,
		4:   CategoryIntermediate,
		5:   CategoryAdvanced,
		7:   CategoryAdvanced,
		8:   CategoryLegendary,
		100: CategoryFreestyle,
		107: CategoryFreestyle,
	}
	for id, want := range cases {
		if got := CategoryForTopic(id); got != want {
			t.Fatalf("CategoryForTopic(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestChallengeFromTOML(t *testing.T) {
	src := `
id = "motion_001"
version = "1.0.0"
title = "Seek and Replace"
topic = "motions"
difficulty = 1
hint = "Use f/F to jump to characters"
detailed_hint = "Try 3fw to jump to the 3rd w"
par_keystrokes = 8

[start]
content = "The quick brown fox"

[target]
content = "The quick brown cat"
`
	var c Challenge
	if err := toml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.ID != "motion_001" {
		t.Fatalf("unexpected id %q", c.ID)
	}
	if c.ParKeystrokes != 8 {
		t.Fatalf("unexpected par %d", c.ParKeystrokes)
	}
	if c.Target.Content != "The quick brown cat" {
		t.Fatalf("unexpected target %q", c.Target.Content)
	}
}
