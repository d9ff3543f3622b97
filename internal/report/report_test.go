package report

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

func TestOffenseHeadline(t *testing.T) {
	p := model.OffensePrediction{
		Matches: 6,
		Call:    model.Outcome{Value: "Pass", Count: 4, Total: 6, Share: 4.0 / 6.0},
	}
	assert.Equal(t, "Most Likely Play: Pass (Confidence: 66.7%)", OffenseHeadline(p))
	assert.Equal(t, NoMatches, OffenseHeadline(model.OffensePrediction{}))
}

func TestDefenseHeadlines(t *testing.T) {
	p := model.DefensePrediction{
		Matches:  4,
		Front:    model.Outcome{Value: "4-3", Count: 3, Total: 4, Share: 0.75},
		Blitz:    model.Outcome{},
		Coverage: model.Outcome{Value: "Cover2", Count: 4, Total: 4, Share: 1},
	}
	assert.Equal(t, []string{
		"Most Likely Front: 4-3 (75.0%)",
		"Most Likely Blitz: — (—)",
		"Most Likely Coverage: Cover2 (100.0%)",
	}, DefenseHeadlines(p))
	assert.Equal(t, []string{NoMatches}, DefenseHeadlines(model.DefensePrediction{}))
}

func TestPrintTendencies(t *testing.T) {
	var buf bytes.Buffer
	PrintTendencies(&buf, model.OffenseGroupFields, model.FieldPlayCall, model.FieldYardsGained, nil)
	assert.Equal(t, NoTendencies+"\n", buf.String())

	buf.Reset()
	rows := []model.TendencyRow{
		{Key: []string{"1", "4-6", "A", "11", "Shotgun"}, Samples: 6, Top: "Pass", TopPct: 66.7,
			AvgValue: sql.NullFloat64{Float64: 4.67, Valid: true}},
		{Key: []string{"3", "11+", "C", "10", "Empty"}, Samples: 3, Top: "Pass", TopPct: 100},
	}
	PrintTendencies(&buf, model.OffenseGroupFields, model.FieldPlayCall, model.FieldYardsGained, rows)
	out := buf.String()
	for _, want := range []string{"SAMPLES", "66.7", "4.67", "100.0", "—", "SHOTGUN"} {
		assert.Contains(t, strings.ToUpper(out), want)
	}
}

func TestPrintValues(t *testing.T) {
	var buf bytes.Buffer
	PrintValues(&buf, model.FieldFormation, []string{"Pistol", "Shotgun"})
	assert.Equal(t, "Pistol\nShotgun\n", buf.String())

	buf.Reset()
	PrintValues(&buf, model.FieldFormation, nil)
	assert.Equal(t, "No values for Formation.\n", buf.String())
}

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	PrintPreview(&buf, model.Defense, []model.Play{{
		Row: 4, Type: model.Defense, Down: 3, Distance: model.ParseDistance("7"),
		OffensiveFormation: "Shotgun", BackfieldSet: "Empty", DefensiveFront: "4-3", Coverage: "Cover2",
	}})
	out := buf.String()
	assert.Contains(t, out, "Data Preview (Defense)")
	assert.Contains(t, out, "Cover2")
	assert.Contains(t, out, "5", "rows are shown 1-based")
}

func TestPrintRaw(t *testing.T) {
	var buf bytes.Buffer
	PrintRaw(&buf, []string{"play_call"}, nil)
	assert.Equal(t, "(no rows)\n", buf.String())

	buf.Reset()
	PrintRaw(&buf, []string{"play_call", "n"}, [][]string{{"Pass", "4"}, {"Run", "NULL"}})
	out := buf.String()
	assert.Contains(t, out, "Pass")
	assert.Contains(t, out, "NULL")
	assert.True(t, strings.HasSuffix(out, "(2 rows)\n"))
}
