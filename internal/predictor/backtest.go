package predictor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/aggregator"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/bucket"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

// BacktestResult scores leave-one-out predictions: each play is predicted from
// every other play in its situation and compared with what was actually called.
type BacktestResult struct {
	Outcome model.Field
	Plays   int // plays with a recorded outcome
	Covered int // plays for which some other play gave a prediction
	Correct int
}

// Coverage is Covered/Plays as a percentage, 0 when nothing was scored.
func (r BacktestResult) Coverage() float64 {
	if r.Plays == 0 {
		return 0
	}
	return model.Round(100*float64(r.Covered)/float64(r.Plays), 1)
}

// Accuracy is Correct/Covered as a percentage, 0 when nothing was covered.
func (r BacktestResult) Accuracy() float64 {
	if r.Covered == 0 {
		return 0
	}
	return model.Round(100*float64(r.Correct)/float64(r.Covered), 1)
}

// BacktestOffense replays PredictOffense for every offensive play.
func BacktestOffense(st *dataset.Store) (BacktestResult, error) {
	if err := st.Require(offenseFields...); err != nil {
		return BacktestResult{}, err
	}
	key := func(p model.Play) string {
		return situationKey(strconv.Itoa(p.Down), string(bucket.Of(p.Distance.Yards)),
			p.FieldZone, p.Personnel, p.Formation)
	}
	return backtest(st, model.Offense, model.FieldPlayCall, key), nil
}

// BacktestDefense replays PredictDefense for every defensive play, scoring one
// of Defensive Front, Blitz Type or Coverage.
func BacktestDefense(st *dataset.Store, outcome model.Field) (BacktestResult, error) {
	switch outcome {
	case model.FieldDefensiveFront, model.FieldBlitzType, model.FieldCoverage:
	default:
		return BacktestResult{}, fmt.Errorf("backtest defense: %q is not a defensive call", outcome)
	}
	if err := st.Require(defenseFields...); err != nil {
		return BacktestResult{}, err
	}
	key := func(p model.Play) string {
		return situationKey(strconv.Itoa(p.Down), strconv.Itoa(p.Distance.Yards),
			p.OffensiveFormation, p.BackfieldSet)
	}
	return backtest(st, model.Defense, outcome, key), nil
}

func backtest(st *dataset.Store, t model.DatasetType, outcome model.Field, key func(model.Play) string) BacktestResult {
	groups := make(map[string][]model.Play)
	var order []string
	st.Each(func(p model.Play) {
		if p.Type != t || !p.Distance.Valid {
			return
		}
		k := key(p)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], p)
	})

	res := BacktestResult{Outcome: outcome}
	for _, k := range order {
		g := groups[k]
		for i := range g {
			actual := g[i].Value(outcome)
			if actual == "" {
				continue
			}
			res.Plays++
			others := make([]model.Play, 0, len(g)-1)
			others = append(others, g[:i]...)
			others = append(others, g[i+1:]...)
			guess := aggregator.ModeOf(others, outcome)
			if !guess.OK() {
				continue
			}
			res.Covered++
			if guess.Value == actual {
				res.Correct++
			}
		}
	}
	return res
}

func situationKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}
