// Package predictor answers "what is the most likely call here?" by exact
// lookup over historical plays.
package predictor

import (
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/aggregator"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/bucket"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

// OffenseQuery is an offensive situation. Distance is matched by bucket.
type OffenseQuery struct {
	Down      int
	Distance  int
	FieldZone string
	Personnel string
	Formation string
}

// DefenseQuery is the offensive look a defense faces. Distance is matched
// exactly, not by bucket.
type DefenseQuery struct {
	Down               int
	Distance           int
	OffensiveFormation string
	BackfieldSet       string
}

var (
	offenseFields = []model.Field{
		model.FieldDown, model.FieldDistance, model.FieldZone,
		model.FieldPersonnel, model.FieldFormation, model.FieldPlayCall,
	}
	defenseFields = []model.Field{
		model.FieldDown, model.FieldDistance, model.FieldOffensiveFormation, model.FieldBackfieldSet,
		model.FieldDefensiveFront, model.FieldBlitzType, model.FieldCoverage,
	}
)

// PredictOffense returns the modal play call among offensive plays in the
// same down, distance bucket, field zone, personnel and formation. A result
// with Matches == 0 means no history fits; that is not an error.
func PredictOffense(st *dataset.Store, q OffenseQuery) (model.OffensePrediction, error) {
	if err := st.Require(offenseFields...); err != nil {
		return model.OffensePrediction{}, err
	}
	want := bucket.Of(q.Distance)
	matches := st.Filter(func(p model.Play) bool {
		return p.Type == model.Offense &&
			p.Down == q.Down &&
			p.Distance.Valid && bucket.Of(p.Distance.Yards) == want &&
			p.FieldZone == q.FieldZone &&
			p.Personnel == q.Personnel &&
			p.Formation == q.Formation
	}).Plays()

	out := model.OffensePrediction{Matches: len(matches)}
	if out.Matches == 0 {
		return out, nil
	}
	out.Call = aggregator.ModeOf(matches, model.FieldPlayCall)
	return out, nil
}

// PredictDefense returns the modal front, blitz and coverage among defensive
// plays with the same down, exact distance, offensive formation and backfield
// set. Each confidence is computed on its own over the same match set.
func PredictDefense(st *dataset.Store, q DefenseQuery) (model.DefensePrediction, error) {
	if err := st.Require(defenseFields...); err != nil {
		return model.DefensePrediction{}, err
	}
	matches := st.Filter(func(p model.Play) bool {
		return p.Type == model.Defense &&
			p.Down == q.Down &&
			p.Distance.Valid && p.Distance.Yards == q.Distance &&
			p.OffensiveFormation == q.OffensiveFormation &&
			p.BackfieldSet == q.BackfieldSet
	}).Plays()

	out := model.DefensePrediction{Matches: len(matches)}
	if out.Matches == 0 {
		return out, nil
	}
	out.Front = aggregator.ModeOf(matches, model.FieldDefensiveFront)
	out.Blitz = aggregator.ModeOf(matches, model.FieldBlitzType)
	out.Coverage = aggregator.ModeOf(matches, model.FieldCoverage)
	return out, nil
}
