package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

var (
	previewType string
	previewRows int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the first rows of one dataset type",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewType, "type", "Offense", "dataset type: Offense or Defense")
	previewCmd.Flags().IntVar(&previewRows, "rows", 0, "rows to show (default preview_rows from config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	t, err := parseType(previewType)
	if err != nil {
		return err
	}
	n := cfg.PreviewRows
	if cmd.Flags().Changed("rows") {
		n = previewRows
	}
	if n < 1 {
		return fmt.Errorf("--rows must be at least 1, got %d", n)
	}

	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	scoped := st.FilterByType(t)
	if scoped.Len() == 0 {
		cWarn.Fprintf(os.Stdout, "No %s plays in the dataset.\n", t)
		return nil
	}
	report.PrintPreview(os.Stdout, t, scoped.Head(n))
	return nil
}
