package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/logger"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Archive a play-by-play CSV into the SQLite database",
	Long: `Load a merged Offense+Defense CSV and store its accepted plays under a new
import id. Later commands can read it back with --from-db. Without an argument the
configured data_path is imported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	src := cfg.DataPath
	if len(args) == 1 {
		src = args[0]
	}

	st, err := dataset.Load(cmd.Context(), src)
	if err != nil {
		return err
	}
	rec.Loaded(st.Len(), st.Rejected())

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	imp, err := db.InsertImport(model.ImportSummary{
		Source:   filepath.Base(src),
		Columns:  st.Columns(),
		Rejected: st.Rejected(),
	}, st.Plays())
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	logger.Named("archive").Info(cmd.Context(), "dataset archived",
		logger.String("import", imp.ID),
		logger.String("db", cfg.DBPath),
		logger.Int("rows", imp.Rows),
	)

	cSuccess.Fprintf(os.Stdout, "Imported %d plays from %s as %s\n", imp.Rows, imp.Source, imp.ID[:8])
	if imp.Rejected > 0 {
		cWarn.Fprintf(os.Stdout, "%d rows rejected (invalid Dataset Type or Down)\n", imp.Rejected)
	}
	report.PrintTypeCounts(os.Stdout, countByType(st), imp.Rejected)
	return nil
}

// countByType counts plays per dataset type in Offense, Defense order.
func countByType(st *dataset.Store) []model.TypeCount {
	var out []model.TypeCount
	for _, t := range []model.DatasetType{model.Offense, model.Defense} {
		out = append(out, model.TypeCount{Type: t, Plays: st.FilterByType(t).Len()})
	}
	return out
}
