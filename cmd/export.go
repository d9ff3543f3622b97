package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/aggregator"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

var (
	exportType       string
	exportOut        string
	exportMinSamples int
	exportMinShare   float64
)

// scoutingReport is the top-level JSON schema written by export.
type scoutingReport struct {
	GeneratedAt string            `json:"generated_at"`
	Source      string            `json:"source"`
	Type        model.DatasetType `json:"dataset_type"`
	MinSamples  int               `json:"min_samples"`
	MinShare    float64           `json:"min_share"`
	GroupBy     []model.Field     `json:"group_by"`
	Outcome     model.Field       `json:"outcome"`
	Value       model.Field       `json:"value,omitempty"`
	Tendencies  []tendencyJSON    `json:"tendencies"`
}

// tendencyJSON is one qualifying group. Situation is keyed by field name.
type tendencyJSON struct {
	Situation map[string]string `json:"situation"`
	Samples   int               `json:"samples"`
	Top       string            `json:"top"`
	TopPct    float64           `json:"top_pct"`
	AvgValue  *float64          `json:"avg_value,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the tendency report as JSON",
	Long: `Compute the high-tendency report and write it as JSON for other tools,
e.g. a game-plan sheet generator.

Example:
  scout export --type Offense --out offense-tendencies.json
  scout export --type Defense --min-share 0.5`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportType, "type", "Offense", "dataset type: Offense or Defense")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().IntVar(&exportMinSamples, "min-samples", 0, "smallest group reported (default min_samples from config)")
	exportCmd.Flags().Float64Var(&exportMinShare, "min-share", 0, "top-call share a group needs, 0-1 (default min_share from config)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	t, err := parseType(exportType)
	if err != nil {
		return err
	}
	q := defaultTendencyQuery(t)
	if cmd.Flags().Changed("min-samples") {
		q.MinSamples = exportMinSamples
	}
	if cmd.Flags().Changed("min-share") {
		q.MinShare = exportMinShare
	}
	if err := checkThresholds(q); err != nil {
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
	rows, err := aggregator.Aggregate(scoped, q)
	if err != nil {
		return fmt.Errorf("aggregate tendencies: %w", err)
	}
	rec.Tendencies(len(rows))

	source := cfg.DataPath
	if fromDB {
		source = cfg.DBPath
	}
	out := buildScoutingReport(source, t, q, rows, time.Now().UTC())
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if exportOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d tendency group(s) to %s\n", len(rows), exportOut)
	return nil
}

func buildScoutingReport(source string, t model.DatasetType, q aggregator.Query, rows []model.TendencyRow, now time.Time) scoutingReport {
	r := scoutingReport{
		GeneratedAt: now.Format(time.RFC3339),
		Source:      source,
		Type:        t,
		MinSamples:  q.MinSamples,
		MinShare:    q.MinShare,
		GroupBy:     q.GroupBy,
		Outcome:     q.Outcome,
		Value:       q.Value,
		Tendencies:  make([]tendencyJSON, 0, len(rows)),
	}
	for _, row := range rows {
		tj := tendencyJSON{
			Situation: make(map[string]string, len(q.GroupBy)),
			Samples:   row.Samples,
			Top:       row.Top,
			TopPct:    row.TopPct,
		}
		for i, f := range q.GroupBy {
			tj.Situation[string(f)] = row.Key[i]
		}
		if row.AvgValue.Valid {
			avg := row.AvgValue.Float64
			tj.AvgValue = &avg
		}
		r.Tendencies = append(r.Tendencies, tj)
	}
	return r
}
