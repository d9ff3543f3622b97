package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/storage"
)

// summaryCmd shows how many plays of each type the loaded dataset holds.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show play counts per dataset type",
	Long: `Display the number of Offense and Defense plays in the dataset, plus the rows
rejected at load. With --from-db the counts come from the archived import.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	if fromDB {
		return summarizeArchive()
	}
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n=== Dataset Summary (%s) ===\n\n", cfg.DataPath)
	fmt.Fprintf(os.Stdout, "  Columns : %d\n\n", len(st.Columns()))
	report.PrintTypeCounts(os.Stdout, countByType(st), st.Rejected())
	return nil
}

func summarizeArchive() error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var imp *model.ImportSummary
	if importID != "" {
		imp, err = db.GetImportByPrefix(importID)
	} else {
		imp, err = db.LatestImport()
	}
	if err != nil {
		return fmt.Errorf("query import: %w", err)
	}
	if imp == nil {
		fmt.Fprintln(os.Stdout, "No datasets archived yet. Run 'scout import <file.csv>' to add one.")
		return nil
	}
	counts, err := db.CountByType(imp.ID)
	if err != nil {
		return fmt.Errorf("count plays: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\n=== Archive Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Import   : %s\n", imp.ID)
	fmt.Fprintf(os.Stdout, "  Source   : %s\n", imp.Source)
	fmt.Fprintf(os.Stdout, "  Imported : %s\n", imp.ImportedAt)
	fmt.Fprintf(os.Stdout, "  Columns  : %d\n\n", len(imp.Columns))
	report.PrintTypeCounts(os.Stdout, counts, imp.Rejected)
	return nil
}
