package aggregator

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

var offenseColumns = []model.Field{
	model.FieldDatasetType, model.FieldDown, model.FieldDistance, model.FieldZone,
	model.FieldPersonnel, model.FieldFormation, model.FieldPlayCall, model.FieldYardsGained,
}

// offensePlay builds one offensive snap. yards < -100 means "missing".
func offensePlay(down int, distance, zone, personnel, formation, call string, yards float64) model.Play {
	p := model.Play{
		Type:      model.Offense,
		Down:      down,
		Distance:  model.ParseDistance(distance),
		FieldZone: zone,
		Personnel: personnel,
		Formation: formation,
		PlayCall:  call,
	}
	if yards > -100 {
		p.YardsGained = sql.NullFloat64{Float64: yards, Valid: true}
	}
	return p
}

func repeat(p model.Play, n int) []model.Play {
	out := make([]model.Play, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// makeStore numbers rows in order and derives the distance bucket.
func makeStore(t *testing.T, plays ...[]model.Play) *dataset.Store {
	t.Helper()
	var all []model.Play
	for _, ps := range plays {
		all = append(all, ps...)
	}
	for i := range all {
		all[i].Row = i
	}
	st, err := dataset.New(all, offenseColumns, 0).WithDistanceBucket(model.FieldDistance)
	if err != nil {
		t.Fatalf("derive bucket: %v", err)
	}
	return st
}

// ---- Tally ----

func TestTally_FirstEncounteredWinsTies(t *testing.T) {
	tl := NewTally()
	for _, v := range []string{"Run", "Pass", "", "Pass", "Run", "Screen"} {
		tl.Add(v)
	}
	m := tl.Mode()
	if m.Value != "Run" {
		t.Errorf("tie between Run and Pass should go to Run (seen first), got %q", m.Value)
	}
	if m.Count != 2 || m.Total != 5 {
		t.Errorf("count=%d total=%d, want 2/5 (blank not counted)", m.Count, m.Total)
	}
	if m.Share != 0.4 {
		t.Errorf("share = %v, want 0.4", m.Share)
	}
}

func TestTally_Empty(t *testing.T) {
	m := NewTally().Mode()
	if m.OK() {
		t.Errorf("empty tally should not be OK: %+v", m)
	}
}

// ---- Aggregate ----

func TestAggregate_SixPlayGroupQualifies(t *testing.T) {
	st := makeStore(t,
		repeat(offensePlay(1, "5", "A", "11", "Shotgun", "Pass", 6), 4),
		repeat(offensePlay(1, "5", "A", "11", "Shotgun", "Run", 2), 2),
		repeat(offensePlay(2, "8", "B", "12", "I-Form", "Run", 3), 2),
	)

	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 qualifying group, got %d: %+v", len(rows), rows)
	}
	r := rows[0]
	wantKey := []string{"1", "4-6", "A", "11", "Shotgun"}
	if !reflect.DeepEqual(r.Key, wantKey) {
		t.Errorf("key = %v, want %v", r.Key, wantKey)
	}
	if r.Samples != 6 || r.Top != "Pass" || r.TopPct != 66.7 {
		t.Errorf("row = %+v, want 6 samples, Pass, 66.7", r)
	}
	if !r.AvgValue.Valid || r.AvgValue.Float64 != 4.67 {
		t.Errorf("avg yards = %+v, want 4.67", r.AvgValue)
	}
}

func TestAggregate_SampleFloor(t *testing.T) {
	st := makeStore(t, repeat(offensePlay(3, "2", "Red", "22", "Jumbo", "Run", 1), 2))

	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("2 samples at 100%% must not qualify, got %+v", rows)
	}
}

func TestAggregate_ShareBoundaryInclusive(t *testing.T) {
	// 13 of 20 is exactly 0.65.
	st := makeStore(t,
		repeat(offensePlay(1, "10", "A", "11", "Shotgun", "Pass", 5), 13),
		repeat(offensePlay(1, "10", "A", "11", "Shotgun", "Run", 3), 7),
	)
	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 || rows[0].TopPct != 65 {
		t.Fatalf("share of exactly 0.65 should qualify, got %+v", rows)
	}

	// Three samples at exactly the configured share also qualify.
	st = makeStore(t,
		repeat(offensePlay(2, "1", "B", "10", "Empty", "Pass", 5), 2),
		repeat(offensePlay(2, "1", "B", "10", "Empty", "Run", 3), 1),
	)
	q := DefaultQuery()
	q.MinShare = 2.0 / 3.0
	rows, err = Aggregate(st, q)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 || rows[0].Samples != 3 {
		t.Fatalf("3 samples at exactly min share should qualify, got %+v", rows)
	}
}

func TestAggregate_OrderedByShareThenKey(t *testing.T) {
	st := makeStore(t,
		repeat(offensePlay(2, "5", "A", "11", "Shotgun", "Pass", 5), 3),
		repeat(offensePlay(1, "5", "A", "11", "Shotgun", "Pass", 5), 3),
		repeat(offensePlay(3, "12", "C", "10", "Empty", "Pass", 8), 3),
		repeat(offensePlay(3, "12", "C", "10", "Empty", "Run", 1), 1),
	)
	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Key[0] != "1" || rows[1].Key[0] != "2" {
		t.Errorf("equal shares should keep ascending key order, got %v then %v", rows[0].Key, rows[1].Key)
	}
	if rows[2].TopPct != 75 {
		t.Errorf("last row should be the 75%% group, got %+v", rows[2])
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	st := makeStore(t,
		repeat(offensePlay(1, "5", "A", "11", "Shotgun", "Pass", 6), 4),
		repeat(offensePlay(1, "5", "A", "11", "Shotgun", "Run", 2), 2),
		repeat(offensePlay(3, "12", "C", "10", "Empty", "Run", 1), 3),
	)
	first, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	second, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between runs:\n%+v\n%+v", first, second)
	}
}

func TestAggregate_TieBreakUsesRowOrder(t *testing.T) {
	st := makeStore(t,
		[]model.Play{offensePlay(4, "1", "Goal", "22", "Jumbo", "Sneak", 1)},
		[]model.Play{offensePlay(4, "1", "Goal", "22", "Jumbo", "Dive", 1)},
		[]model.Play{offensePlay(4, "1", "Goal", "22", "Jumbo", "Dive", 0)},
		[]model.Play{offensePlay(4, "1", "Goal", "22", "Jumbo", "Sneak", 2)},
	)
	q := DefaultQuery()
	q.MinShare = 0.5
	rows, err := Aggregate(st, q)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 || rows[0].Top != "Sneak" {
		t.Fatalf("tie should go to Sneak (first row), got %+v", rows)
	}
}

func TestAggregate_AllMissingValueIsUndefined(t *testing.T) {
	st := makeStore(t, repeat(offensePlay(1, "5", "A", "11", "Shotgun", "Pass", -999), 3))
	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].AvgValue.Valid {
		t.Errorf("all-missing yards should leave the mean undefined, got %v", rows[0].AvgValue.Float64)
	}
}

func TestAggregate_UnknownBucketFormsNoGroup(t *testing.T) {
	st := makeStore(t,
		repeat(offensePlay(1, "abc", "A", "11", "Shotgun", "Pass", 6), 3),
		repeat(offensePlay(1, "1e30", "A", "11", "Shotgun", "Pass", 6), 3),
		repeat(offensePlay(1, "2", "A", "11", "Shotgun", "Run", 1), 3),
	)
	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the 1-3 group, got %+v", rows)
	}
	if rows[0].Key[1] != "1-3" || rows[0].Samples != 3 || rows[0].Top != "Run" {
		t.Errorf("unparseable distances leaked into the 1-3 group: %+v", rows[0])
	}
}

func TestAggregate_BlankKeyCellsSkipped(t *testing.T) {
	st := makeStore(t, repeat(offensePlay(1, "5", "", "11", "Shotgun", "Pass", 6), 5))
	rows, err := Aggregate(st, DefaultQuery())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("plays without a field zone should not form a group, got %+v", rows)
	}
}

func TestAggregate_MissingField(t *testing.T) {
	cols := []model.Field{model.FieldDatasetType, model.FieldDown, model.FieldDistance,
		model.FieldZone, model.FieldPersonnel, model.FieldFormation, model.FieldYardsGained}
	st, err := dataset.New(nil, cols, 0).WithDistanceBucket(model.FieldDistance)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Aggregate(st, DefaultQuery())
	var mf *dataset.MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if mf.Field != model.FieldPlayCall {
		t.Errorf("missing field = %q, want Play Call", mf.Field)
	}
}

func TestAggregate_WithoutBucketDerivation(t *testing.T) {
	st := dataset.New([]model.Play{offensePlay(1, "5", "A", "11", "Shotgun", "Pass", 6)}, offenseColumns, 0)
	_, err := Aggregate(st, DefaultQuery())
	if f, ok := dataset.IsMissingField(err); !ok || f != model.FieldDistanceBucket {
		t.Errorf("expected missing Distance Bucket, got %v", err)
	}
}
