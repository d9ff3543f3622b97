package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/config"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/logger"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/metrics"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/storage"
)

var (
	cfgPath     string
	dataPath    string
	dbPath      string
	fromDB      bool
	importID    string
	logLevel    string
	metricsFile string

	cfg *config.Config
	rec = metrics.New()
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Football scouting tendencies and play prediction",
	Long: `Load historical play-by-play data, report situations where one call dominates,
and predict the most likely offensive play or defensive call for a new situation.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: flushMetrics,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to YAML config (default $SCOUT_CONFIG)")
	pf.StringVar(&dataPath, "data", config.DefaultDataFile, "path to the merged Offense+Defense CSV")
	pf.StringVar(&dbPath, "db", "", "path to SQLite archive (default ~/.scout/scout.db)")
	pf.BoolVar(&fromDB, "from-db", false, "load the dataset from the SQLite archive instead of the CSV")
	pf.StringVar(&importID, "import", "", "archive import id prefix to load with --from-db (default latest)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here on exit")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(tendenciesCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(valuesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(exportCmd)
}

// setup layers config (defaults < file < env < flags) and starts logging.
func setup(cmd *cobra.Command, _ []string) error {
	logger.Init(os.Stderr)

	c, err := config.Load(cmd.Context(), cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		c.DataPath = dataPath
	}
	if flags.Changed("db") {
		c.DBPath = dbPath
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("metrics-file") {
		c.MetricsFile = metricsFile
	}
	if err := logger.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	return nil
}

func flushMetrics(_ *cobra.Command, _ []string) error {
	if cfg == nil || cfg.MetricsFile == "" {
		return nil
	}
	return rec.WriteTextfile(cfg.MetricsFile)
}

// loadStore loads the full dataset from the CSV or, with --from-db, from the archive.
func loadStore(ctx context.Context) (*dataset.Store, error) {
	var (
		st  *dataset.Store
		err error
	)
	if fromDB {
		st, err = loadFromArchive(ctx)
	} else {
		st, err = dataset.Load(ctx, cfg.DataPath)
	}
	if err != nil {
		return nil, err
	}
	rec.Loaded(st.Len(), st.Rejected())
	return st, nil
}

func loadFromArchive(ctx context.Context) (*dataset.Store, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var imp *model.ImportSummary
	if importID != "" {
		imp, err = db.GetImportByPrefix(importID)
	} else {
		imp, err = db.LatestImport()
	}
	if err != nil {
		return nil, fmt.Errorf("query import: %w", err)
	}
	if imp == nil {
		return nil, fmt.Errorf("%s: %w", cfg.DBPath, dataset.ErrDataUnavailable)
	}

	plays, err := db.LoadPlays(imp.ID)
	if err != nil {
		return nil, fmt.Errorf("load plays: %w", err)
	}
	logger.Named("archive").Info(ctx, "dataset loaded",
		logger.String("import", imp.ID),
		logger.String("source", imp.Source),
		logger.Int("rows", len(plays)),
	)
	return dataset.New(plays, imp.Columns, imp.Rejected), nil
}

// scope narrows st to one dataset type and derives the distance bucket when
// the Distance column exists.
func scope(st *dataset.Store, t model.DatasetType) (*dataset.Store, error) {
	scoped := st.FilterByType(t)
	if !scoped.Has(model.FieldDistance) {
		return scoped, nil
	}
	return scoped.WithDistanceBucket(model.FieldDistance)
}

func parseType(s string) (model.DatasetType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "offense":
		return model.Offense, nil
	case "defense":
		return model.Defense, nil
	default:
		return "", fmt.Errorf("invalid dataset type %q: want Offense or Defense", s)
	}
}

func parseFields(names []string) ([]model.Field, error) {
	out := make([]model.Field, 0, len(names))
	for _, n := range names {
		f, ok := model.ParseField(n)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", n)
		}
		out = append(out, f)
	}
	return out, nil
}
