// Package aggregator finds situational groups where one call dominates.
package aggregator

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/bucket"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

// Query describes one tendency report.
type Query struct {
	GroupBy    []model.Field
	Outcome    model.Field
	Value      model.Field // averaged per group; empty skips the average
	MinSamples int
	MinShare   float64 // fraction in (0, 1]
}

// DefaultQuery is the offensive report: play call by down, distance bucket,
// field zone, personnel and formation, at least 3 plays and a 65% top call.
func DefaultQuery() Query {
	return Query{
		GroupBy:    append([]model.Field(nil), model.OffenseGroupFields...),
		Outcome:    model.FieldPlayCall,
		Value:      model.FieldYardsGained,
		MinSamples: 3,
		MinShare:   0.65,
	}
}

func (q Query) required() []model.Field {
	fields := append([]model.Field(nil), q.GroupBy...)
	fields = append(fields, q.Outcome)
	if q.Value != "" {
		fields = append(fields, q.Value)
	}
	return fields
}

type group struct {
	key     []string
	samples int
	calls   *Tally
	sum     float64
	n       int
}

// Aggregate groups the plays in st by q.GroupBy and returns every group with
// at least q.MinSamples plays whose top q.Outcome share is at least
// q.MinShare. Rows are ordered by descending share; equal shares keep
// ascending key order. An empty slice is a valid answer.
func Aggregate(st *dataset.Store, q Query) ([]model.TendencyRow, error) {
	if len(q.GroupBy) == 0 {
		return nil, fmt.Errorf("aggregate: no group fields")
	}
	if q.Outcome == "" {
		return nil, fmt.Errorf("aggregate: no outcome field")
	}
	if err := st.Require(q.required()...); err != nil {
		return nil, err
	}

	groups := make(map[string]*group)
	var order []*group
	st.Each(func(p model.Play) {
		key := make([]string, len(q.GroupBy))
		for i, f := range q.GroupBy {
			key[i] = p.Value(f)
			if key[i] == "" || (f == model.FieldDistanceBucket && p.Bucket == bucket.Unknown) {
				// Blank cells and unknown buckets never form a group.
				return
			}
		}
		id := strings.Join(key, "\x1f")
		g, ok := groups[id]
		if !ok {
			g = &group{key: key, calls: NewTally()}
			groups[id] = g
			order = append(order, g)
		}
		g.samples++
		g.calls.Add(p.Value(q.Outcome))
		if q.Value != "" {
			if v, ok := p.Number(q.Value); ok {
				g.sum += v
				g.n++
			}
		}
	})

	rows := make([]model.TendencyRow, 0)
	for _, g := range order {
		top := g.calls.Mode()
		if !top.OK() {
			continue
		}
		if g.samples < q.MinSamples || top.Share < q.MinShare {
			continue
		}
		row := model.TendencyRow{
			Key:     g.key,
			Samples: g.samples,
			Top:     top.Value,
			TopPct:  model.Round(top.Confidence(), 1),
		}
		if g.n > 0 {
			row.AvgValue = sql.NullFloat64{Float64: model.Round(g.sum/float64(g.n), 2), Valid: true}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compareKeys(q.GroupBy, rows[i].Key, rows[j].Key) < 0
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TopPct > rows[j].TopPct
	})
	return rows, nil
}

func compareKeys(fields []model.Field, a, b []string) int {
	for i, f := range fields {
		if c := dataset.CompareValues(f, a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
