package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

var valuesType string

var valuesCmd = &cobra.Command{
	Use:   "values <field>",
	Short: "List the distinct values of a field",
	Long: `List the sorted distinct non-blank values of one field for a dataset type,
e.g. the choices for --formation or --zone in 'scout predict'.`,
	Args: cobra.ExactArgs(1),
	RunE: runValues,
}

func init() {
	valuesCmd.Flags().StringVar(&valuesType, "type", "Offense", "dataset type: Offense or Defense")
}

func runValues(cmd *cobra.Command, args []string) error {
	t, err := parseType(valuesType)
	if err != nil {
		return err
	}
	f, ok := model.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}

	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	scoped, err := scope(st, t)
	if err != nil {
		return fmt.Errorf("derive distance bucket: %w", err)
	}
	vals, err := scoped.Distinct(f)
	if err != nil {
		return fmt.Errorf("list values: %w", err)
	}
	report.PrintValues(os.Stdout, f, vals)
	return nil
}
