// Package dataset holds the loaded play-by-play table. A Store is never
// modified after it is built; every transformation returns a new Store.
package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/bucket"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

// Store is an immutable, row-ordered collection of plays.
type Store struct {
	plays    []model.Play
	columns  []model.Field
	rejected int
	typ      model.DatasetType
}

// New builds a Store from already-typed plays, e.g. rows read back from the
// archive. The slices are copied.
func New(plays []model.Play, columns []model.Field, rejected int) *Store {
	return &Store{
		plays:    append([]model.Play(nil), plays...),
		columns:  append([]model.Field(nil), columns...),
		rejected: rejected,
	}
}

// Len returns the number of plays.
func (s *Store) Len() int { return len(s.plays) }

// Rejected returns how many source rows failed validation at load.
func (s *Store) Rejected() int { return s.rejected }

// Type returns the dataset type the store is scoped to, or "" for a mixed store.
func (s *Store) Type() model.DatasetType { return s.typ }

// Plays returns a copy of the plays in source order.
func (s *Store) Plays() []model.Play {
	return append([]model.Play(nil), s.plays...)
}

// Head returns a copy of the first n plays.
func (s *Store) Head(n int) []model.Play {
	if n > len(s.plays) {
		n = len(s.plays)
	}
	if n < 0 {
		n = 0
	}
	return append([]model.Play(nil), s.plays[:n]...)
}

// Each calls fn with a copy of every play in source order.
func (s *Store) Each(fn func(p model.Play)) {
	for _, p := range s.plays {
		fn(p)
	}
}

// Columns returns the fields present in the dataset.
func (s *Store) Columns() []model.Field {
	return append([]model.Field(nil), s.columns...)
}

// Has reports whether the dataset carries field f.
func (s *Store) Has(f model.Field) bool {
	for _, c := range s.columns {
		if c == f {
			return true
		}
	}
	return false
}

// Require returns a MissingFieldError for the first absent field.
func (s *Store) Require(fields ...model.Field) error {
	for _, f := range fields {
		if !s.Has(f) {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

// FilterByType returns a store holding only plays of type t.
func (s *Store) FilterByType(t model.DatasetType) *Store {
	out := s.Filter(func(p model.Play) bool { return p.Type == t })
	out.typ = t
	return out
}

// Filter returns a store holding the plays for which keep is true.
func (s *Store) Filter(keep func(p model.Play) bool) *Store {
	out := &Store{
		columns:  s.Columns(),
		rejected: s.rejected,
		typ:      s.typ,
	}
	for _, p := range s.plays {
		if keep(p) {
			out.plays = append(out.plays, p)
		}
	}
	return out
}

// WithDistanceBucket returns a copy where every play's bucket is derived
// from field. Cells that do not parse as an integer get bucket.Unknown.
func (s *Store) WithDistanceBucket(field model.Field) (*Store, error) {
	if err := s.Require(field); err != nil {
		return nil, err
	}
	out := &Store{
		plays:    make([]model.Play, len(s.plays)),
		columns:  s.Columns(),
		rejected: s.rejected,
		typ:      s.typ,
	}
	for i, p := range s.plays {
		p.Bucket = bucket.Parse(p.Value(field))
		out.plays[i] = p
	}
	if !out.Has(model.FieldDistanceBucket) {
		out.columns = append(out.columns, model.FieldDistanceBucket)
	}
	return out, nil
}

// Distinct returns the sorted, non-blank distinct values of f.
func (s *Store) Distinct(f model.Field) ([]string, error) {
	if err := s.Require(f); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for i := range s.plays {
		v := s.plays[i].Value(f)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return CompareValues(f, out[i], out[j]) < 0 })
	return out, nil
}

// CompareValues orders two cells of f: bucket labels by band, numbers
// numerically and before text, everything else lexically.
func CompareValues(f model.Field, a, b string) int {
	if f == model.FieldDistanceBucket {
		la, _ := bucket.FromText(a)
		lb, _ := bucket.FromText(b)
		if c := la.Order() - lb.Order(); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	}
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
