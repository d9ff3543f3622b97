package aggregator

import "github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"

// Tally is a frequency count that remembers the order values were first seen,
// so the mode is reproducible: ties go to the earliest value.
type Tally struct {
	order  []string
	counts map[string]int
	total  int
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add counts v. Blank values are missing and are not counted.
func (t *Tally) Add(v string) {
	if v == "" {
		return
	}
	if _, ok := t.counts[v]; !ok {
		t.order = append(t.order, v)
	}
	t.counts[v]++
	t.total++
}

// Total is the number of non-blank values added.
func (t *Tally) Total() int { return t.total }

// Count returns how many times v was added.
func (t *Tally) Count(v string) int { return t.counts[v] }

// Mode returns the most frequent value and its share of Total.
func (t *Tally) Mode() model.Outcome {
	var out model.Outcome
	for _, v := range t.order {
		if c := t.counts[v]; c > out.Count {
			out.Value, out.Count = v, c
		}
	}
	out.Total = t.total
	if t.total > 0 {
		out.Share = float64(out.Count) / float64(t.total)
	}
	return out
}

// ModeOf tallies field f over plays in order and returns the mode.
func ModeOf(plays []model.Play, f model.Field) model.Outcome {
	t := NewTally()
	for i := range plays {
		t.Add(plays[i].Value(f))
	}
	return t.Mode()
}
