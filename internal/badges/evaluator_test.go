package badges

import (
	"reflect"
	"testing"

	"github.com/abhisek/cbsetutor/internal/progression"
)

func ids(bs []Badge) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Catalog() {
		if seen[b.ID] {
			t.Errorf("duplicate badge id %q", b.ID)
		}
		seen[b.ID] = true
		if b.metric == nil || b.threshold <= 0 {
			t.Errorf("badge %q has no milestone", b.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	b, ok := Lookup("streak-7")
	if !ok {
		t.Fatal("streak-7 not found")
	}
	if b.Rarity != RarityRare {
		t.Errorf("streak-7 rarity = %q, want %q", b.Rarity, RarityRare)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should miss")
	}
}

func TestCrossed(t *testing.T) {
	e := NewEvaluator()

	tests := []struct {
		name          string
		before, after progression.Counters
		want          []string
	}{
		{
			name:   "first completion",
			before: progression.Counters{CurrentLevel: 1},
			after:  progression.Counters{CurrentLevel: 1, TotalXP: 30, StreakCount: 1, TotalQuizzes: 1},
			want:   []string{"first-quiz"},
		},
		{
			name:   "perfect first completion",
			before: progression.Counters{CurrentLevel: 1},
			after:  progression.Counters{CurrentLevel: 1, TotalXP: 80, StreakCount: 1, TotalQuizzes: 1, PerfectQuizzes: 1},
			want:   []string{"first-quiz", "perfect-1"},
		},
		{
			name:   "third day of streak",
			before: progression.Counters{CurrentLevel: 2, StreakCount: 2, TotalQuizzes: 4},
			after:  progression.Counters{CurrentLevel: 2, StreakCount: 3, TotalQuizzes: 5},
			want:   []string{"streak-3"},
		},
		{
			name:   "level five and xp",
			before: progression.Counters{CurrentLevel: 4, TotalXP: 990, TotalQuizzes: 9},
			after:  progression.Counters{CurrentLevel: 5, TotalXP: 1010, TotalQuizzes: 10},
			want:   []string{"level-5", "xp-1000"},
		},
		{
			name:   "nothing new",
			before: progression.Counters{CurrentLevel: 3, StreakCount: 4, TotalQuizzes: 6},
			after:  progression.Counters{CurrentLevel: 3, StreakCount: 4, TotalQuizzes: 7},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(e.Crossed(tt.before, tt.after))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Crossed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPicksRarest(t *testing.T) {
	e := NewEvaluator()

	before := progression.Counters{CurrentLevel: 1}
	after := progression.Counters{CurrentLevel: 1, StreakCount: 1, TotalQuizzes: 1, PerfectQuizzes: 1}
	if got := e.Check(before, after); got != "perfect-1" {
		t.Errorf("Check = %q, want %q", got, "perfect-1")
	}

	// level-5 and xp-1000 are both rare; catalog order wins.
	before = progression.Counters{CurrentLevel: 4, TotalXP: 990, TotalQuizzes: 9}
	after = progression.Counters{CurrentLevel: 5, TotalXP: 1010, TotalQuizzes: 10}
	if got := e.Check(before, after); got != "level-5" {
		t.Errorf("Check = %q, want %q", got, "level-5")
	}

	if got := e.Check(after, after); got != "" {
		t.Errorf("Check with no change = %q, want empty", got)
	}
}

func TestEvaluatorWithUpdater(t *testing.T) {
	u := progression.NewUpdater(progression.DefaultConfig(), NewEvaluator())
	out := u.ApplyCompletion(progression.Counters{CurrentLevel: 1}, progression.CompletionEvent{BaseXP: 50})
	if out.BadgeEarned != "first-quiz" {
		t.Errorf("BadgeEarned = %q, want %q", out.BadgeEarned, "first-quiz")
	}
}

func TestRarest(t *testing.T) {
	common := Badge{ID: "a", Rarity: RarityCommon}
	rare := Badge{ID: "b", Rarity: RarityRare}
	rare2 := Badge{ID: "c", Rarity: RarityRare}
	tests := []struct {
		name string
		in   []Badge
		want string
	}{
		{"empty", nil, ""},
		{"single", []Badge{common}, "a"},
		{"rarer wins", []Badge{common, rare}, "b"},
		{"tie keeps first", []Badge{rare, rare2, common}, "b"},
	}
	for _, tt := range tests {
		if got := Rarest(tt.in); got != tt.want {
			t.Errorf("Rarest(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
