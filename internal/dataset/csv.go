package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/logger"
	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

// Load reads a CSV dataset from path. A missing or empty file is
// ErrDataUnavailable.
func Load(ctx context.Context, path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDataUnavailable)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(ctx, f, path)
}

// Read parses CSV with a header row. Rows with an unknown dataset type or an
// unparseable down are rejected and counted; other bad cells degrade to
// missing values.
func Read(ctx context.Context, r io.Reader, name string) (*Store, error) {
	log := logger.Named("dataset")

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[model.Field]int)
	var columns []model.Field
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		f, ok := model.ParseField(h)
		if !ok || f == model.FieldDistanceBucket {
			continue
		}
		if _, dup := idx[f]; dup {
			continue
		}
		idx[f] = i
		columns = append(columns, f)
	}
	s := &Store{columns: columns}
	if err := s.Require(model.FieldDatasetType); err != nil {
		return nil, err
	}

	rowN := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowN+1, err)
		}
		row := rowN
		rowN++

		cell := func(f model.Field) string {
			i, ok := idx[f]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		p, reason := parsePlay(row, cell, idx)
		if reason != "" {
			s.rejected++
			log.Warn(ctx, "row rejected", logger.Int("row", row+1), logger.String("reason", reason))
			continue
		}
		s.plays = append(s.plays, p)
	}

	if rowN == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrDataUnavailable)
	}
	log.Info(ctx, "dataset loaded",
		logger.String("source", name),
		logger.Int("rows", len(s.plays)),
		logger.Int("rejected", s.rejected),
		logger.Int("columns", len(columns)),
	)
	return s, nil
}

// parsePlay returns a non-empty reason when the row must be rejected.
func parsePlay(row int, cell func(model.Field) string, idx map[model.Field]int) (model.Play, string) {
	typ, ok := model.ParseDatasetType(cell(model.FieldDatasetType))
	if !ok {
		return model.Play{}, fmt.Sprintf("unknown dataset type %q", cell(model.FieldDatasetType))
	}
	p := model.Play{
		Row:                row,
		Type:               typ,
		Distance:           model.ParseDistance(cell(model.FieldDistance)),
		FieldZone:          cell(model.FieldZone),
		Personnel:          cell(model.FieldPersonnel),
		Formation:          cell(model.FieldFormation),
		PlayCall:           cell(model.FieldPlayCall),
		YardsGained:        parseYards(cell(model.FieldYardsGained)),
		OffensiveFormation: cell(model.FieldOffensiveFormation),
		BackfieldSet:       cell(model.FieldBackfieldSet),
		DefensiveFront:     cell(model.FieldDefensiveFront),
		BlitzType:          cell(model.FieldBlitzType),
		Coverage:           cell(model.FieldCoverage),
	}
	if _, ok := idx[model.FieldDown]; ok {
		down, ok := parseWhole(cell(model.FieldDown))
		if !ok {
			return model.Play{}, fmt.Sprintf("unparseable down %q", cell(model.FieldDown))
		}
		p.Down = down
	}
	return p, ""
}

func parseWhole(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

func parseYards(s string) sql.NullFloat64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
