package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

const importColumns = `id, source, imported_at, columns, row_count, rejected_count`

// InsertImport archives plays under a new import id in one transaction and
// returns the stored summary. summary.ID and summary.ImportedAt are filled in
// when empty.
func (db *DB) InsertImport(summary model.ImportSummary, plays []model.Play) (model.ImportSummary, error) {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	if summary.ImportedAt == "" {
		summary.ImportedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	summary.Rows = len(plays)

	tx, err := db.conn.Begin()
	if err != nil {
		return summary, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO imports(`+importColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		summary.ID, summary.Source, summary.ImportedAt, joinFields(summary.Columns),
		summary.Rows, summary.Rejected,
	)
	if err != nil {
		return summary, fmt.Errorf("insert import: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO plays(
			import_id, row_index, dataset_type, down, distance,
			field_zone, personnel, formation, play_call, yards_gained,
			offensive_formation, backfield_set, defensive_front, blitz_type, coverage
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return summary, err
	}
	defer stmt.Close()

	for _, p := range plays {
		_, err = stmt.Exec(
			summary.ID, p.Row, string(p.Type), p.Down, p.Distance.Raw,
			p.FieldZone, p.Personnel, p.Formation, p.PlayCall, p.YardsGained,
			p.OffensiveFormation, p.BackfieldSet, p.DefensiveFront, p.BlitzType, p.Coverage,
		)
		if err != nil {
			return summary, fmt.Errorf("insert play row %d: %w", p.Row, err)
		}
	}
	return summary, tx.Commit()
}

// ListImports returns all imports, newest first.
func (db *DB) ListImports() ([]model.ImportSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + importColumns + ` FROM imports ORDER BY imported_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ImportSummary
	for rows.Next() {
		s, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LatestImport returns the newest import, or nil when the archive is empty.
func (db *DB) LatestImport() (*model.ImportSummary, error) {
	row := db.conn.QueryRow(`SELECT ` + importColumns + ` FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`)
	s, err := scanImport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetImportByPrefix finds the first import whose id starts with prefix.
func (db *DB) GetImportByPrefix(prefix string) (*model.ImportSummary, error) {
	row := db.conn.QueryRow(`SELECT `+importColumns+` FROM imports WHERE id LIKE ? ORDER BY imported_at DESC LIMIT 1`, prefix+"%")
	s, err := scanImport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadPlays returns the plays of an import in source row order.
func (db *DB) LoadPlays(importID string) ([]model.Play, error) {
	rows, err := db.conn.Query(`
		SELECT row_index, dataset_type, down, distance,
		       field_zone, personnel, formation, play_call, yards_gained,
		       offensive_formation, backfield_set, defensive_front, blitz_type, coverage
		FROM plays WHERE import_id = ? ORDER BY row_index`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Play
	for rows.Next() {
		var p model.Play
		var typ, distance string
		if err := rows.Scan(
			&p.Row, &typ, &p.Down, &distance,
			&p.FieldZone, &p.Personnel, &p.Formation, &p.PlayCall, &p.YardsGained,
			&p.OffensiveFormation, &p.BackfieldSet, &p.DefensiveFront, &p.BlitzType, &p.Coverage,
		); err != nil {
			return nil, err
		}
		p.Type = model.DatasetType(typ)
		p.Distance = model.ParseDistance(distance)
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountByType returns the number of plays per dataset type in an import.
func (db *DB) CountByType(importID string) ([]model.TypeCount, error) {
	rows, err := db.conn.Query(`
		SELECT dataset_type, COUNT(*) FROM plays
		WHERE import_id = ? GROUP BY dataset_type ORDER BY dataset_type`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TypeCount
	for rows.Next() {
		var tc model.TypeCount
		var typ string
		if err := rows.Scan(&typ, &tc.Plays); err != nil {
			return nil, err
		}
		tc.Type = model.DatasetType(typ)
		out = append(out, tc)
	}
	return out, rows.Err()
}

// QueryRaw runs an ad-hoc read-only query and returns every cell as text.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	ctx := context.Background()
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `PRAGMA query_only = ON`); err != nil {
		return nil, nil, err
	}
	defer conn.ExecContext(ctx, `PRAGMA query_only = OFF`)

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanImport(row scanner) (model.ImportSummary, error) {
	var s model.ImportSummary
	var columns string
	err := row.Scan(&s.ID, &s.Source, &s.ImportedAt, &columns, &s.Rows, &s.Rejected)
	if err != nil {
		return s, err
	}
	s.Columns = splitFields(columns)
	return s, nil
}

func joinFields(fields []model.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func splitFields(s string) []model.Field {
	if s == "" {
		return nil
	}
	var out []model.Field
	for _, part := range strings.Split(s, ",") {
		out = append(out, model.Field(part))
	}
	return out
}
