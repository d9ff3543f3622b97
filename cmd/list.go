package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/storage"
)

var listCmd = &cobra.Command{
	Use:     "imports",
	Aliases: []string{"list"},
	Short:   "List all archived datasets",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	imports, err := db.ListImports()
	if err != nil {
		return fmt.Errorf("list imports: %w", err)
	}
	if len(imports) == 0 {
		fmt.Fprintln(os.Stdout, "No datasets archived yet. Run 'scout import <file.csv>' to add one.")
		return nil
	}
	report.PrintImports(os.Stdout, imports)
	return nil
}
