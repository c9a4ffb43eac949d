package badges

import "github.com/abhisek/cbsetutor/internal/progression"

// Evaluator decides which badges a completion unlocks.
// A badge unlocks when its milestone is reached by the new counters but not
// by the old ones, so each badge is crossed at most once per learner.
type Evaluator struct {
	catalog []Badge
}

// NewEvaluator creates an Evaluator over the default catalog.
func NewEvaluator() *Evaluator {
	return &Evaluator{catalog: Catalog()}
}

// Crossed returns the badges newly reached between before and after, in catalog order.
func (e *Evaluator) Crossed(before, after progression.Counters) []Badge {
	var out []Badge
	for _, b := range e.catalog {
		if !b.reached(before) && b.reached(after) {
			out = append(out, b)
		}
	}
	return out
}

// Check returns the ID of the rarest newly crossed badge, or "" if none.
// Ties go to the earliest badge in the catalog.
func (e *Evaluator) Check(before, after progression.Counters) string {
	return Rarest(e.Crossed(before, after))
}

// Rarest returns the ID of the highest-rarity badge in bs, or "" when bs is
// empty. Ties go to the earliest badge.
func Rarest(bs []Badge) string {
	best := -1
	for i := range bs {
		if best < 0 || bs[i].Rarity.rank() > bs[best].Rarity.rank() {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return bs[best].ID
}

var _ progression.BadgeChecker = (*Evaluator)(nil)
