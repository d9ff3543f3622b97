package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/predictor"
)

// Messages shown in place of an empty result.
const (
	NoTendencies = "No high-tendency groups found."
	NoMatches    = "No historical matches for that situation."
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// previewColumns are the fields shown in a data preview for each side.
var previewColumns = map[model.DatasetType][]model.Field{
	model.Offense: {
		model.FieldDown, model.FieldDistance, model.FieldZone, model.FieldPersonnel,
		model.FieldFormation, model.FieldPlayCall, model.FieldYardsGained,
	},
	model.Defense: {
		model.FieldDown, model.FieldDistance, model.FieldOffensiveFormation, model.FieldBackfieldSet,
		model.FieldDefensiveFront, model.FieldBlitzType, model.FieldCoverage,
	},
}

// PrintPreview prints the first rows of a type-scoped dataset.
func PrintPreview(w io.Writer, t model.DatasetType, plays []model.Play) {
	fmt.Fprintf(w, "\n=== Data Preview (%s) ===\n\n", t)
	cols := previewColumns[t]
	table := newTable(w)
	header := []any{"ROW"}
	for _, c := range cols {
		header = append(header, string(c))
	}
	table.Header(header...)
	for _, p := range plays {
		row := []any{strconv.Itoa(p.Row + 1)}
		for _, c := range cols {
			row = append(row, dash(p.Value(c)))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintTendencies prints qualifying groups. valueField names the averaged
// column; an empty valueField hides it.
func PrintTendencies(w io.Writer, groupBy []model.Field, outcome, valueField model.Field, rows []model.TendencyRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, NoTendencies)
		return
	}
	table := newTable(w)
	var header []any
	for _, f := range groupBy {
		header = append(header, string(f))
	}
	header = append(header, "Samples", "Top "+string(outcome), "Top %")
	if valueField != "" {
		header = append(header, "Avg "+string(valueField))
	}
	table.Header(header...)

	for _, r := range rows {
		var row []any
		for _, k := range r.Key {
			row = append(row, k)
		}
		row = append(row, strconv.Itoa(r.Samples), r.Top, fmt.Sprintf("%.1f", r.TopPct))
		if valueField != "" {
			avg := "—"
			if r.AvgValue.Valid {
				avg = fmt.Sprintf("%.2f", r.AvgValue.Float64)
			}
			row = append(row, avg)
		}
		table.Append(row...)
	}
	table.Render()
}

// OffenseHeadline is the one-line answer for an offensive prediction.
func OffenseHeadline(p model.OffensePrediction) string {
	if p.NoMatch() {
		return NoMatches
	}
	return fmt.Sprintf("Most Likely Play: %s (Confidence: %s)", outcomeValue(p.Call), confidence(p.Call))
}

// DefenseHeadlines are the answer lines for a defensive prediction.
func DefenseHeadlines(p model.DefensePrediction) []string {
	if p.NoMatch() {
		return []string{NoMatches}
	}
	return []string{
		fmt.Sprintf("Most Likely Front: %s (%s)", outcomeValue(p.Front), confidence(p.Front)),
		fmt.Sprintf("Most Likely Blitz: %s (%s)", outcomeValue(p.Blitz), confidence(p.Blitz)),
		fmt.Sprintf("Most Likely Coverage: %s (%s)", outcomeValue(p.Coverage), confidence(p.Coverage)),
	}
}

// PrintDefenseTable prints the three defensive outcomes with their counts.
func PrintDefenseTable(w io.Writer, p model.DefensePrediction) {
	table := newTable(w)
	table.Header("CALL", "MOST LIKELY", "SEEN", "OF", "CONFIDENCE")
	for _, r := range []struct {
		name string
		o    model.Outcome
	}{
		{"Front", p.Front},
		{"Blitz", p.Blitz},
		{"Coverage", p.Coverage},
	} {
		table.Append(r.name, outcomeValue(r.o), strconv.Itoa(r.o.Count), strconv.Itoa(r.o.Total), confidence(r.o))
	}
	table.Render()
}

// PrintValues lists the distinct values of a field, one per line.
func PrintValues(w io.Writer, f model.Field, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(w, "No values for %s.\n", f)
		return
	}
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
}

// PrintImports prints archived datasets, newest first.
func PrintImports(w io.Writer, imports []model.ImportSummary) {
	table := newTable(w)
	table.Header("ID", "SOURCE", "IMPORTED", "ROWS", "REJECTED")
	for _, s := range imports {
		id := s.ID
		if len(id) > 8 {
			id = id[:8]
		}
		table.Append(id, s.Source, s.ImportedAt, strconv.Itoa(s.Rows), strconv.Itoa(s.Rejected))
	}
	table.Render()
}

// PrintTypeCounts prints plays per dataset type plus the rejected rows.
func PrintTypeCounts(w io.Writer, counts []model.TypeCount, rejected int) {
	table := newTable(w)
	table.Header("DATASET TYPE", "PLAYS")
	total := 0
	for _, c := range counts {
		table.Append(string(c.Type), strconv.Itoa(c.Plays))
		total += c.Plays
	}
	table.Append("total", strconv.Itoa(total))
	table.Append("rejected", strconv.Itoa(rejected))
	table.Render()
}

// PrintRaw prints an ad-hoc query result followed by its row count.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

// PrintBacktest prints leave-one-out scores, one row per outcome field.
func PrintBacktest(w io.Writer, results []predictor.BacktestResult) {
	table := newTable(w)
	table.Header("OUTCOME", "PLAYS", "COVERED", "COVERAGE", "CORRECT", "ACCURACY")
	for _, r := range results {
		table.Append(string(r.Outcome), strconv.Itoa(r.Plays), strconv.Itoa(r.Covered),
			fmt.Sprintf("%.1f%%", r.Coverage()), strconv.Itoa(r.Correct), fmt.Sprintf("%.1f%%", r.Accuracy()))
	}
	table.Render()
}

func outcomeValue(o model.Outcome) string {
	if !o.OK() {
		return "—"
	}
	return o.Value
}

func confidence(o model.Outcome) string {
	if !o.OK() {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", o.Confidence())
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
