package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/config"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/dataset"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/report"
)

const shellCSV = `Dataset Type,Down,Distance,Field Zone,Personnel,Formation,Play Call,Yards Gained,Offensive Formation,Backfield Set,Defensive Front,Blitz Type,Coverage
Offense,1,5,Red Zone,11,Shotgun,Pass,6,,,,,
Offense,1,5,Red Zone,11,Shotgun,Pass,4,,,,,
Offense,1,4,Red Zone,11,Shotgun,Run,2,,,,,
Defense,3,7,,,,,,Shotgun,Empty,4-3,None,Cover2
Defense,3,7,,,,,,Shotgun,Empty,4-3,Fire Zone,Cover2
Defense,3,7,,,,,,Shotgun,Empty,Nickel,None,Cover2
`

func testSession(t *testing.T) *session {
	t.Helper()
	color.NoColor = true
	cfg = config.New()
	st, err := dataset.Read(context.Background(), strings.NewReader(shellCSV), "shell.csv")
	require.NoError(t, err)
	s, err := newSession(st, model.Offense)
	require.NoError(t, err)
	return s
}

func TestSplitArgs(t *testing.T) {
	got, err := splitArgs(`offense 1 5 "Red Zone" 11  Shotgun`)
	require.NoError(t, err)
	assert.Equal(t, []string{"offense", "1", "5", "Red Zone", "11", "Shotgun"}, got)

	got, err = splitArgs(`values ""`)
	require.NoError(t, err)
	assert.Equal(t, []string{"values", ""}, got)

	_, err = splitArgs(`offense "Red Zone`)
	assert.Error(t, err)
}

func TestSessionOffense(t *testing.T) {
	s := testSession(t)
	var buf bytes.Buffer

	done := s.dispatch(&buf, "offense", []string{"1", "6", "Red Zone", "11", "Shotgun"})
	assert.False(t, done)
	assert.Equal(t, "Most Likely Play: Pass (Confidence: 66.7%)\n", buf.String())

	buf.Reset()
	s.dispatch(&buf, "offense", []string{"2", "6", "Red Zone", "11", "Shotgun"})
	assert.Equal(t, report.NoMatches+"\n", buf.String())
}

func TestSessionDefense(t *testing.T) {
	s := testSession(t)
	var buf bytes.Buffer

	s.dispatch(&buf, "defense", []string{"3", "7", "Shotgun", "Empty"})
	out := buf.String()
	assert.Contains(t, out, "Most Likely Front: 4-3 (66.7%)")
	assert.Contains(t, out, "Most Likely Coverage: Cover2 (100.0%)")
}

func TestSessionTypeSwitchAndValues(t *testing.T) {
	s := testSession(t)
	var buf bytes.Buffer

	s.dispatch(&buf, "values", []string{"distance", "bucket"})
	assert.Equal(t, "4-6\n", buf.String())

	s.dispatch(&buf, "type", []string{"defense"})
	assert.Equal(t, model.Defense, s.typ)
	assert.Equal(t, 3, s.cur.Len())

	buf.Reset()
	s.dispatch(&buf, "values", []string{"Defensive", "Front"})
	assert.Equal(t, "4-3\nNickel\n", buf.String())
}

func TestSessionTendencies(t *testing.T) {
	s := testSession(t)
	var buf bytes.Buffer

	s.dispatch(&buf, "tendencies", nil)
	out := buf.String()
	assert.Contains(t, out, "66.7")
	assert.Contains(t, out, "4.00")

	buf.Reset()
	s.dispatch(&buf, "tendencies", []string{"4"})
	assert.Equal(t, report.NoTendencies+"\n", buf.String())
}

func TestSessionExit(t *testing.T) {
	s := testSession(t)
	assert.True(t, s.dispatch(&bytes.Buffer{}, "exit", nil))
	assert.True(t, s.dispatch(&bytes.Buffer{}, "quit", nil))
}

func TestCheckDistance(t *testing.T) {
	assert.NoError(t, checkDistance(1))
	assert.NoError(t, checkDistance(20))
	assert.Error(t, checkDistance(0))
	assert.Error(t, checkDistance(21))
}

func TestCheckThresholds(t *testing.T) {
	cfg = config.New()
	q := defaultTendencyQuery(model.Offense)
	assert.NoError(t, checkThresholds(q))

	q.MinShare = 0
	assert.Error(t, checkThresholds(q))

	q = defaultTendencyQuery(model.Offense)
	q.MinSamples = -1
	assert.Error(t, checkThresholds(q))

	q = defaultTendencyQuery(model.Offense)
	q.MinShare = 1.01
	assert.Error(t, checkThresholds(q))
}

func TestParseType(t *testing.T) {
	got, err := parseType(" defense ")
	require.NoError(t, err)
	assert.Equal(t, model.Defense, got)

	_, err = parseType("special teams")
	assert.Error(t, err)
}

func TestDefaultTendencyQuery(t *testing.T) {
	cfg = config.New()
	cfg.MinSamples = 5

	off := defaultTendencyQuery(model.Offense)
	assert.Equal(t, model.OffenseGroupFields, off.GroupBy)
	assert.Equal(t, model.FieldPlayCall, off.Outcome)
	assert.Equal(t, 5, off.MinSamples)

	def := defaultTendencyQuery(model.Defense)
	assert.Equal(t, model.FieldDefensiveFront, def.Outcome)
	assert.Empty(t, def.Value)
}

func TestBuildScoutingReport(t *testing.T) {
	cfg = config.New()
	q := defaultTendencyQuery(model.Offense)
	rows := []model.TendencyRow{
		{Key: []string{"1", "4-6", "A", "11", "Shotgun"}, Samples: 6, Top: "Pass", TopPct: 66.7,
			AvgValue: sql.NullFloat64{Float64: 4.67, Valid: true}},
		{Key: []string{"3", "11+", "C", "10", "Empty"}, Samples: 3, Top: "Pass", TopPct: 100},
	}
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	r := buildScoutingReport("plays.csv", model.Offense, q, rows, now)
	assert.Equal(t, "2026-10-16T12:00:00Z", r.GeneratedAt)
	require.Len(t, r.Tendencies, 2)
	assert.Equal(t, "Shotgun", r.Tendencies[0].Situation["Formation"])
	assert.Equal(t, "4-6", r.Tendencies[0].Situation["Distance Bucket"])
	require.NotNil(t, r.Tendencies[0].AvgValue)
	assert.Equal(t, 4.67, *r.Tendencies[0].AvgValue)
	assert.Nil(t, r.Tendencies[1].AvgValue)
}
