package model

import (
	"database/sql"
	"math"
	"strconv"
	"strings"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/bucket"
)

// DatasetType says which side of the ball a row describes.
type DatasetType string

const (
	Offense DatasetType = "Offense"
	Defense DatasetType = "Defense"
)

// ParseDatasetType matches the "Dataset Type" cell exactly after trimming.
func ParseDatasetType(s string) (DatasetType, bool) {
	switch DatasetType(strings.TrimSpace(s)) {
	case Offense:
		return Offense, true
	case Defense:
		return Defense, true
	default:
		return "", false
	}
}

func (t DatasetType) String() string { return string(t) }

// Field names a dataset column.
type Field string

const (
	FieldDatasetType        Field = "Dataset Type"
	FieldDown               Field = "Down"
	FieldDistance           Field = "Distance"
	FieldDistanceBucket     Field = "Distance Bucket"
	FieldZone               Field = "Field Zone"
	FieldPersonnel          Field = "Personnel"
	FieldFormation          Field = "Formation"
	FieldPlayCall           Field = "Play Call"
	FieldYardsGained        Field = "Yards Gained"
	FieldOffensiveFormation Field = "Offensive Formation"
	FieldBackfieldSet       Field = "Backfield Set"
	FieldDefensiveFront     Field = "Defensive Front"
	FieldBlitzType          Field = "Blitz Type"
	FieldCoverage           Field = "Coverage"
)

// OffenseGroupFields is the default situational key for offensive tendencies.
var OffenseGroupFields = []Field{FieldDown, FieldDistanceBucket, FieldZone, FieldPersonnel, FieldFormation}

// SourceFields lists every column the loader understands, in archive order.
var SourceFields = []Field{
	FieldDatasetType, FieldDown, FieldDistance,
	FieldZone, FieldPersonnel, FieldFormation, FieldPlayCall, FieldYardsGained,
	FieldOffensiveFormation, FieldBackfieldSet, FieldDefensiveFront, FieldBlitzType, FieldCoverage,
}

// ParseField resolves a column name case-insensitively.
func ParseField(s string) (Field, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(string(FieldDistanceBucket), s) {
		return FieldDistanceBucket, true
	}
	for _, f := range SourceFields {
		if strings.EqualFold(string(f), s) {
			return f, true
		}
	}
	return "", false
}

// Distance is yards-to-go as read from the source. Raw is kept so an
// unparseable cell can still be shown.
type Distance struct {
	Raw   string
	Yards int
	Valid bool
}

// ParseDistance never fails; unparseable text leaves Valid false.
func ParseDistance(raw string) Distance {
	raw = strings.TrimSpace(raw)
	yards, ok := bucket.Yards(raw)
	return Distance{Raw: raw, Yards: yards, Valid: ok}
}

func (d Distance) String() string {
	if d.Valid {
		return strconv.Itoa(d.Yards)
	}
	return d.Raw
}

// Play is one observed snap. Offense-only and defense-only fields may both be
// populated by the source but only the ones for Type carry meaning.
type Play struct {
	Row      int // position in the source, defines first-encountered order
	Type     DatasetType
	Down     int
	Distance Distance
	Bucket   bucket.Label // set by Store.WithDistanceBucket

	FieldZone   string
	Personnel   string
	Formation   string
	PlayCall    string
	YardsGained sql.NullFloat64

	OffensiveFormation string
	BackfieldSet       string
	DefensiveFront     string
	BlitzType          string
	Coverage           string
}

// Value returns the categorical text of f. Blank means missing.
func (p *Play) Value(f Field) string {
	switch f {
	case FieldDatasetType:
		return string(p.Type)
	case FieldDown:
		return strconv.Itoa(p.Down)
	case FieldDistance:
		return p.Distance.String()
	case FieldDistanceBucket:
		return p.Bucket.String()
	case FieldZone:
		return p.FieldZone
	case FieldPersonnel:
		return p.Personnel
	case FieldFormation:
		return p.Formation
	case FieldPlayCall:
		return p.PlayCall
	case FieldYardsGained:
		if !p.YardsGained.Valid {
			return ""
		}
		return strconv.FormatFloat(p.YardsGained.Float64, 'f', -1, 64)
	case FieldOffensiveFormation:
		return p.OffensiveFormation
	case FieldBackfieldSet:
		return p.BackfieldSet
	case FieldDefensiveFront:
		return p.DefensiveFront
	case FieldBlitzType:
		return p.BlitzType
	case FieldCoverage:
		return p.Coverage
	default:
		return ""
	}
}

// Number returns the numeric value of f, or false when f is not numeric or
// the cell is missing.
func (p *Play) Number(f Field) (float64, bool) {
	switch f {
	case FieldDown:
		return float64(p.Down), true
	case FieldDistance:
		return float64(p.Distance.Yards), p.Distance.Valid
	case FieldYardsGained:
		return p.YardsGained.Float64, p.YardsGained.Valid
	default:
		return 0, false
	}
}

// Outcome is the modal value of one field within a set of plays.
// Total counts only plays where the field was not blank.
type Outcome struct {
	Value string
	Count int
	Total int
	Share float64
}

// OK reports whether any play had a value for the field.
func (o Outcome) OK() bool { return o.Total > 0 }

// Confidence is Share expressed as a percentage.
func (o Outcome) Confidence() float64 { return o.Share * 100 }

// TendencyRow is one qualifying situational group.
type TendencyRow struct {
	Key      []string
	Samples  int
	Top      string
	TopPct   float64 // share*100, one decimal
	AvgValue sql.NullFloat64
}

// OffensePrediction is the result of an offensive match lookup.
// Matches == 0 means no historical play fit the situation.
type OffensePrediction struct {
	Matches int
	Call    Outcome
}

// NoMatch reports whether nothing matched.
func (p OffensePrediction) NoMatch() bool { return p.Matches == 0 }

// DefensePrediction holds three independent marginal modes over the same
// match set.
type DefensePrediction struct {
	Matches  int
	Front    Outcome
	Blitz    Outcome
	Coverage Outcome
}

// NoMatch reports whether nothing matched.
func (p DefensePrediction) NoMatch() bool { return p.Matches == 0 }

// Round rounds half-to-even at the given number of decimal places.
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.RoundToEven(x*pow) / pow
}

// ImportSummary describes one dataset archived in the SQLite store.
type ImportSummary struct {
	ID         string
	Source     string
	ImportedAt string
	Columns    []Field
	Rows       int
	Rejected   int
}

// TypeCount is the number of plays of one dataset type.
type TypeCount struct {
	Type  DatasetType
	Plays int
}
