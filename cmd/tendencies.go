package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/aggregator"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/logger"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

var (
	tendType       string
	tendMinSamples int
	tendMinShare   float64
	tendGroupBy    []string
	tendOutcome    string
	tendValue      string
)

var tendenciesCmd = &cobra.Command{
	Use:   "tendencies",
	Short: "List situations where one call dominates",
	Long: `Group plays by situation and report every group with enough samples whose
most frequent call reaches the share threshold.

Offense defaults: group by Down, Distance Bucket, Field Zone, Personnel and
Formation; outcome Play Call; average Yards Gained.
Defense defaults: group by Down, Distance Bucket, Offensive Formation and
Backfield Set; outcome Defensive Front.`,
	Args: cobra.NoArgs,
	RunE: runTendencies,
}

func init() {
	f := tendenciesCmd.Flags()
	f.StringVar(&tendType, "type", "Offense", "dataset type: Offense or Defense")
	f.IntVar(&tendMinSamples, "min-samples", 0, "smallest group reported (default min_samples from config)")
	f.Float64Var(&tendMinShare, "min-share", 0, "top-call share a group needs, 0-1 (default min_share from config)")
	f.StringSliceVar(&tendGroupBy, "group-by", nil, "fields that define a situation")
	f.StringVar(&tendOutcome, "outcome", "", "field whose most frequent value is reported")
	f.StringVar(&tendValue, "value", "", "numeric field averaged per group; 'none' to skip")
}

// defaultTendencyQuery returns the report shape for a dataset type.
func defaultTendencyQuery(t model.DatasetType) aggregator.Query {
	q := aggregator.DefaultQuery()
	if t == model.Defense {
		q.GroupBy = []model.Field{
			model.FieldDown, model.FieldDistanceBucket,
			model.FieldOffensiveFormation, model.FieldBackfieldSet,
		}
		q.Outcome = model.FieldDefensiveFront
		q.Value = ""
	}
	q.MinSamples = cfg.MinSamples
	q.MinShare = cfg.MinShare
	return q
}

func buildTendencyQuery(cmd *cobra.Command, t model.DatasetType) (aggregator.Query, error) {
	q := defaultTendencyQuery(t)
	flags := cmd.Flags()
	if flags.Changed("min-samples") {
		q.MinSamples = tendMinSamples
	}
	if flags.Changed("min-share") {
		q.MinShare = tendMinShare
	}
	if err := checkThresholds(q); err != nil {
		return q, err
	}
	if len(tendGroupBy) > 0 {
		fields, err := parseFields(tendGroupBy)
		if err != nil {
			return q, err
		}
		q.GroupBy = fields
	}
	if tendOutcome != "" {
		f, ok := model.ParseField(tendOutcome)
		if !ok {
			return q, fmt.Errorf("unknown field %q", tendOutcome)
		}
		q.Outcome = f
	}
	switch tendValue {
	case "":
	case "none":
		q.Value = ""
	default:
		f, ok := model.ParseField(tendValue)
		if !ok {
			return q, fmt.Errorf("unknown field %q", tendValue)
		}
		q.Value = f
	}
	return q, nil
}

func checkThresholds(q aggregator.Query) error {
	if q.MinSamples < 1 {
		return fmt.Errorf("--min-samples must be at least 1, got %d", q.MinSamples)
	}
	if q.MinShare <= 0 || q.MinShare > 1 {
		return fmt.Errorf("--min-share must be in (0, 1], got %g", q.MinShare)
	}
	return nil
}

func runTendencies(cmd *cobra.Command, args []string) error {
	t, err := parseType(tendType)
	if err != nil {
		return err
	}
	q, err := buildTendencyQuery(cmd, t)
	if err != nil {
		return err
	}

	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	scoped, err := scope(st, t)
	if err != nil {
		return fmt.Errorf("derive distance bucket: %w", err)
	}

	logger.Get().Debug(cmd.Context(), "tendency query",
		logger.String("type", string(t)),
		logger.Any("group_by", q.GroupBy),
		logger.String("outcome", string(q.Outcome)),
		logger.Int("min_samples", q.MinSamples),
		logger.Float64("min_share", q.MinShare),
	)
	rows, err := aggregator.Aggregate(scoped, q)
	if err != nil {
		return fmt.Errorf("aggregate tendencies: %w", err)
	}
	rec.Tendencies(len(rows))

	fmt.Fprintf(os.Stdout, "\n=== High-Tendency Situations (%s, n≥%d, share≥%.0f%%) ===\n\n",
		t, q.MinSamples, q.MinShare*100)
	if len(rows) == 0 {
		cInfo.Fprintln(os.Stdout, report.NoTendencies)
		return nil
	}
	report.PrintTendencies(os.Stdout, q.GroupBy, q.Outcome, q.Value, rows)
	return nil
}
