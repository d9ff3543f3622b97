package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/aggregator"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/metrics"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/predictor"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cSuccess  = color.New(color.FgGreen, color.Bold)
	cInfo     = color.New(color.FgBlue)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Load the dataset once and query it interactively. Type 'help' for available commands.
Quote values that contain spaces, e.g. offense 3 7 "Red Zone" 11 Shotgun.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// session is the REPL state: one loaded dataset and the side being scouted.
type session struct {
	all *dataset.Store
	typ model.DatasetType
	cur *dataset.Store
}

func newSession(st *dataset.Store, t model.DatasetType) (*session, error) {
	s := &session{all: st}
	if err := s.setType(t); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) setType(t model.DatasetType) error {
	scoped, err := scope(s.all, t)
	if err != nil {
		return err
	}
	s.typ, s.cur = t, scoped
	return nil
}

func runShell(cmd *cobra.Command, _ []string) error {
	st, err := loadStore(cmd.Context())
	if err != nil {
		return err
	}
	s, err := newSession(st, model.Offense)
	if err != nil {
		return fmt.Errorf("derive distance bucket: %w", err)
	}

	cGreeting.Println("scout shell")
	cSuccess.Printf("Loaded %d plays", st.Len())
	if st.Rejected() > 0 {
		cWarn.Printf(" (%d rows rejected)", st.Rejected())
	}
	fmt.Println()
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("scout")
		cMuted.Printf("[%s]> ", s.typ)
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens, err := splitArgs(line)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if done := s.dispatch(os.Stdout, tokens[0], tokens[1:]); done {
			return nil
		}
	}
	return scanner.Err()
}

// dispatch runs one shell command. It reports true when the session should end.
func (s *session) dispatch(w io.Writer, name string, args []string) bool {
	var err error
	switch name {
	case "exit", "quit":
		return true
	case "help":
		shellHelp(w)
	case "type":
		if len(args) != 1 {
			err = errors.New("usage: type <Offense|Defense>")
			break
		}
		var t model.DatasetType
		if t, err = parseType(args[0]); err == nil {
			err = s.setType(t)
		}
	case "preview":
		err = s.preview(w, args)
	case "tendencies":
		err = s.tendencies(w, args)
	case "offense":
		err = s.offense(w, args)
	case "defense":
		err = s.defense(w, args)
	case "values":
		err = s.values(w, args)
	case "summary":
		report.PrintTypeCounts(w, countByType(s.all), s.all.Rejected())
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
	}
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return false
}

func shellHelp(w io.Writer) {
	fmt.Fprintln(w)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"type <Offense|Defense>", "switch the side being scouted"},
		{"preview [rows]", "show the first rows"},
		{"tendencies [min-samples] [min-share]", "high-tendency situations"},
		{"offense <down> <dist> <zone> <pers> <form>", "most likely play call"},
		{"defense <down> <dist> <form> <backfield>", "most likely front, blitz and coverage"},
		{"values <field>", "distinct values of a field"},
		{"summary", "plays per dataset type"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(w, "  ")
		cCmd.Fprintf(w, "%-44s", r.cmd)
		fmt.Fprintln(w, r.desc)
	}
	fmt.Fprintln(w)
}

func (s *session) preview(w io.Writer, args []string) error {
	n := cfg.PreviewRows
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid row count %q", args[0])
		}
		n = v
	}
	if s.cur.Len() == 0 {
		cWarn.Fprintf(w, "No %s plays in the dataset.\n", s.typ)
		return nil
	}
	report.PrintPreview(w, s.typ, s.cur.Head(n))
	return nil
}

func (s *session) tendencies(w io.Writer, args []string) error {
	q := defaultTendencyQuery(s.typ)
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid min-samples %q", args[0])
		}
		q.MinSamples = v
	}
	if len(args) > 1 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil || v <= 0 || v > 1 {
			return fmt.Errorf("invalid min-share %q", args[1])
		}
		q.MinShare = v
	}
	rows, err := aggregator.Aggregate(s.cur, q)
	if err != nil {
		return err
	}
	rec.Tendencies(len(rows))
	if len(rows) == 0 {
		cInfo.Fprintln(w, report.NoTendencies)
		return nil
	}
	report.PrintTendencies(w, q.GroupBy, q.Outcome, q.Value, rows)
	return nil
}

func (s *session) offense(w io.Writer, args []string) error {
	if len(args) != 5 {
		return errors.New("usage: offense <down> <distance> <zone> <personnel> <formation>")
	}
	down, dist, err := parseSituation(args[0], args[1])
	if err != nil {
		return err
	}
	p, err := predictor.PredictOffense(s.all.FilterByType(model.Offense), predictor.OffenseQuery{
		Down: down, Distance: dist, FieldZone: args[2], Personnel: args[3], Formation: args[4],
	})
	if err != nil {
		return err
	}
	rec.Prediction(metrics.KindOffense, !p.NoMatch())
	if p.NoMatch() {
		cWarn.Fprintln(w, report.NoMatches)
		return nil
	}
	cSuccess.Fprintln(w, report.OffenseHeadline(p))
	return nil
}

func (s *session) defense(w io.Writer, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: defense <down> <distance> <formation> <backfield>")
	}
	down, dist, err := parseSituation(args[0], args[1])
	if err != nil {
		return err
	}
	p, err := predictor.PredictDefense(s.all.FilterByType(model.Defense), predictor.DefenseQuery{
		Down: down, Distance: dist, OffensiveFormation: args[2], BackfieldSet: args[3],
	})
	if err != nil {
		return err
	}
	rec.Prediction(metrics.KindDefense, !p.NoMatch())
	if p.NoMatch() {
		cWarn.Fprintln(w, report.NoMatches)
		return nil
	}
	for _, line := range report.DefenseHeadlines(p) {
		cSuccess.Fprintln(w, line)
	}
	return nil
}

func (s *session) values(w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: values <field>")
	}
	name := strings.Join(args, " ")
	f, ok := model.ParseField(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	vals, err := s.cur.Distinct(f)
	if err != nil {
		return err
	}
	report.PrintValues(w, f, vals)
	return nil
}

func parseSituation(downArg, distArg string) (int, int, error) {
	down, err := strconv.Atoi(downArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid down %q", downArg)
	}
	dist, err := strconv.Atoi(distArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid distance %q", distArg)
	}
	if err := checkDistance(dist); err != nil {
		return 0, 0, err
	}
	return down, dist, nil
}

// splitArgs splits a shell line on whitespace, keeping double-quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if started {
		out = append(out, cur.String())
	}
	return out, nil
}
