package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/predictor"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

var (
	btType string
	btOut  string
)

// backtestRecord is the JSON shape written by --out.
type backtestRecord struct {
	Type     model.DatasetType `json:"dataset_type"`
	Outcome  model.Field       `json:"outcome"`
	Plays    int               `json:"plays"`
	Covered  int               `json:"covered"`
	Correct  int               `json:"correct"`
	Coverage float64           `json:"coverage_pct"`
	Accuracy float64           `json:"accuracy_pct"`
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Score the predictor against the dataset itself",
	Long: `Predict every historical play from all other plays in the same situation
(leave-one-out) and report how often the prediction matched the real call.

Offense scores Play Call. Defense scores Defensive Front, Blitz Type and Coverage.

Example:
  scout backtest --type Defense --out backtest.json`,
	Args: cobra.NoArgs,
	RunE: runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&btType, "type", "Offense", "dataset type: Offense or Defense")
	backtestCmd.Flags().StringVar(&btOut, "out", "", "also write results as JSON to this file")
}

func runBacktest(cmd *cobra.Command, _ []string) error {
	t, err := parseType(btType)
	if err != nil {
		return err
	}
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	results, err := runBacktests(st.FilterByType(t), t)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n=== Leave-One-Out Backtest (%s) ===\n\n", t)
	report.PrintBacktest(os.Stdout, results)

	if btOut == "" {
		return nil
	}
	records := make([]backtestRecord, len(results))
	for i, r := range results {
		records[i] = backtestRecord{
			Type: t, Outcome: r.Outcome,
			Plays: r.Plays, Covered: r.Covered, Correct: r.Correct,
			Coverage: r.Coverage(), Accuracy: r.Accuracy(),
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if err := os.WriteFile(btOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", btOut, err)
	}
	fmt.Fprintf(os.Stderr, "\nWrote %d result(s) to %s\n", len(records), btOut)
	return nil
}

func runBacktests(st *dataset.Store, t model.DatasetType) ([]predictor.BacktestResult, error) {
	if t == model.Offense {
		r, err := predictor.BacktestOffense(st)
		if err != nil {
			return nil, fmt.Errorf("backtest offense: %w", err)
		}
		return []predictor.BacktestResult{r}, nil
	}
	var out []predictor.BacktestResult
	for _, f := range []model.Field{model.FieldDefensiveFront, model.FieldBlitzType, model.FieldCoverage} {
		r, err := predictor.BacktestDefense(st, f)
		if err != nil {
			return nil, fmt.Errorf("backtest defense: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
