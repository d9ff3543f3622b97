package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a read-only SQL query against the archive",
	Long: `Run an arbitrary read-only SQL query against the archive and print results as a table.
Statements that write are refused.

Schema overview:
  imports(id, source, imported_at, columns, row_count, rejected_count)
  plays(import_id, row_index, dataset_type, down, distance, field_zone, personnel,
    formation, play_call, yards_gained REAL, offensive_formation, backfield_set,
    defensive_front, blitz_type, coverage)

Note: distance is stored as the raw CSV text. Use CAST(distance AS INTEGER) to compare.

Example:
  scout sql "SELECT formation, play_call, COUNT(*) FROM plays
             WHERE dataset_type = 'Offense' GROUP BY 1, 2 ORDER BY 3 DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintRaw(os.Stdout, cols, rows)
	return nil
}
