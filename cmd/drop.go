package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/logger"
)

var dropForce bool

// dropCmd deletes the archive database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the archive database",
	Long:  "Permanently delete the SQLite archive. All imported datasets will be lost. The source CSV files are not touched; re-import them to rebuild.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DBPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Archive does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL mode leaves side files next to the database.
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(cfg.DBPath + suffix)
	}
	logger.Named("archive").Info(cmd.Context(), "archive dropped", logger.String("db", cfg.DBPath))
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DBPath)
	return nil
}
