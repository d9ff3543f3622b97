package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/logger"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/metrics"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/predictor"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

// Bounds of the distance input.
const (
	minDistance = 1
	maxDistance = 20
)

var (
	predDown      int
	predDistance  int
	predZone      string
	predPersonnel string
	predFormation string
	predBackfield string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the most likely call for a situation",
}

var predictOffenseCmd = &cobra.Command{
	Use:   "offense",
	Short: "Most likely offensive play call",
	Long: `Find offensive plays with the same down, distance bucket, field zone,
personnel and formation, and report the most frequent play call.`,
	Args: cobra.NoArgs,
	RunE: runPredictOffense,
}

var predictDefenseCmd = &cobra.Command{
	Use:   "defense",
	Short: "Most likely defensive front, blitz and coverage",
	Long: `Find defensive plays with the same down, exact distance, offensive formation
and backfield set, and report the most frequent front, blitz and coverage.`,
	Args: cobra.NoArgs,
	RunE: runPredictDefense,
}

func init() {
	for _, c := range []*cobra.Command{predictOffenseCmd, predictDefenseCmd} {
		c.Flags().IntVar(&predDown, "down", 0, "down (required)")
		c.Flags().IntVar(&predDistance, "distance", 5, "yards to go, 1-20")
		c.Flags().StringVar(&predFormation, "formation", "", "offensive formation (required)")
		c.MarkFlagRequired("down")
		c.MarkFlagRequired("formation")
	}
	predictOffenseCmd.Flags().StringVar(&predZone, "zone", "", "field zone (required)")
	predictOffenseCmd.Flags().StringVar(&predPersonnel, "personnel", "", "personnel grouping (required)")
	predictOffenseCmd.MarkFlagRequired("zone")
	predictOffenseCmd.MarkFlagRequired("personnel")
	predictDefenseCmd.Flags().StringVar(&predBackfield, "backfield", "", "backfield set (required)")
	predictDefenseCmd.MarkFlagRequired("backfield")

	predictCmd.AddCommand(predictOffenseCmd)
	predictCmd.AddCommand(predictDefenseCmd)
}

func checkDistance(d int) error {
	if d < minDistance || d > maxDistance {
		return fmt.Errorf("--distance must be between %d and %d, got %d", minDistance, maxDistance, d)
	}
	return nil
}

func runPredictOffense(cmd *cobra.Command, args []string) error {
	if err := checkDistance(predDistance); err != nil {
		return err
	}
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	q := predictor.OffenseQuery{
		Down:      predDown,
		Distance:  predDistance,
		FieldZone: predZone,
		Personnel: predPersonnel,
		Formation: predFormation,
	}
	logger.Get().Debug(cmd.Context(), "offense prediction", logger.Any("query", q))

	p, err := predictor.PredictOffense(st.FilterByType(model.Offense), q)
	if err != nil {
		return fmt.Errorf("predict offense: %w", err)
	}
	rec.Prediction(metrics.KindOffense, !p.NoMatch())
	printOffense(p)
	return nil
}

func runPredictDefense(cmd *cobra.Command, args []string) error {
	if err := checkDistance(predDistance); err != nil {
		return err
	}
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	q := predictor.DefenseQuery{
		Down:               predDown,
		Distance:           predDistance,
		OffensiveFormation: predFormation,
		BackfieldSet:       predBackfield,
	}
	logger.Get().Debug(cmd.Context(), "defense prediction", logger.Any("query", q))

	p, err := predictor.PredictDefense(st.FilterByType(model.Defense), q)
	if err != nil {
		return fmt.Errorf("predict defense: %w", err)
	}
	rec.Prediction(metrics.KindDefense, !p.NoMatch())
	printDefense(p)
	return nil
}

func printOffense(p model.OffensePrediction) {
	if p.NoMatch() {
		cWarn.Fprintln(os.Stdout, report.NoMatches)
		return
	}
	cSuccess.Fprintln(os.Stdout, report.OffenseHeadline(p))
	cMuted.Fprintf(os.Stdout, "%d matching plays, %d with this call\n", p.Matches, p.Call.Count)
}

func printDefense(p model.DefensePrediction) {
	if p.NoMatch() {
		cWarn.Fprintln(os.Stdout, report.NoMatches)
		return
	}
	for _, line := range report.DefenseHeadlines(p) {
		cSuccess.Fprintln(os.Stdout, line)
	}
	fmt.Fprintln(os.Stdout)
	report.PrintDefenseTable(os.Stdout, p)
	cMuted.Fprintf(os.Stdout, "%d matching plays\n", p.Matches)
}
