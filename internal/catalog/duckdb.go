// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS institutions (
	id               VARCHAR NOT NULL,
	name             VARCHAR NOT NULL,
	city             VARCHAR NOT NULL DEFAULT '',
	region           VARCHAR NOT NULL DEFAULT '',
	inst_type        VARCHAR NOT NULL,
	established_year BIGINT,
	national_rank    BIGINT,
	fees             DOUBLE,
	courses          VARCHAR NOT NULL DEFAULT '[]',
	facilities       VARCHAR NOT NULL DEFAULT '[]',
	placement        VARCHAR
)`, `
CREATE TABLE IF NOT EXISTS cutoffs (
	institution_id VARCHAR NOT NULL,
	exam           VARCHAR NOT NULL,
	branch         VARCHAR NOT NULL,
	cutoff         DOUBLE NOT NULL
)`}

// DuckDBStore keeps the catalog in DuckDB. List-valued columns hold JSON
// arrays; cutoffs live in their own table. Key uniqueness is enforced by
// Check before Import rather than by table constraints.
type DuckDBStore struct {
	conn     *sql.DB
	seedPath string
}

// OpenDuckDB opens the database at path (":memory:" or "" for in-memory)
// and creates the schema. When seedPath is set and the catalog is empty,
// the file is imported.
func OpenDuckDB(ctx context.Context, path, seedPath string) (*DuckDBStore, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create catalog directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", path+"?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb catalog: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	conn.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("create catalog schema: %w", err)
		}
	}

	s := &DuckDBStore{conn: conn, seedPath: seedPath}
	if seedPath != "" {
		var n int
		if err := conn.QueryRowContext(ctx, `SELECT count(*) FROM institutions`).Scan(&n); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("count institutions: %w", err)
		}
		if n == 0 {
			if _, err := s.Reload(ctx); err != nil {
				_ = conn.Close()
				return nil, err
			}
		} else {
			metrics.CatalogInstitutions.Set(float64(n))
		}
	}
	return s, nil
}

// Close closes the database.
func (s *DuckDBStore) Close() error {
	return s.conn.Close()
}

// Import replaces the whole catalog in one transaction.
func (s *DuckDBStore) Import(ctx context.Context, insts []models.Institution) error {
	if err := Check(insts); err != nil {
		return err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`DELETE FROM cutoffs`, `DELETE FROM institutions`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}

	for i := range insts {
		if err := insertInstitution(ctx, tx, &insts[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func insertInstitution(ctx context.Context, tx *sql.Tx, inst *models.Institution) error {
	courses, err := json.Marshal(nonNil(inst.Courses))
	if err != nil {
		return fmt.Errorf("encode courses for %s: %w", inst.ID, err)
	}
	facilities, err := json.Marshal(nonNil(inst.Facilities))
	if err != nil {
		return fmt.Errorf("encode facilities for %s: %w", inst.ID, err)
	}
	var placement sql.NullString
	if inst.Placement != nil {
		raw, err := json.Marshal(inst.Placement)
		if err != nil {
			return fmt.Errorf("encode placement for %s: %w", inst.ID, err)
		}
		placement = sql.NullString{String: string(raw), Valid: true}
	}

	var year, rank sql.NullInt64
	if inst.EstablishedYear != 0 {
		year = sql.NullInt64{Int64: int64(inst.EstablishedYear), Valid: true}
	}
	if inst.Rank != nil {
		rank = sql.NullInt64{Int64: int64(*inst.Rank), Valid: true}
	}
	var fees sql.NullFloat64
	if inst.Fees != nil {
		fees = sql.NullFloat64{Float64: *inst.Fees, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO institutions
			(id, name, city, region, inst_type, established_year, national_rank, fees, courses, facilities, placement)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inst.ID, inst.Name, inst.City, inst.Region, string(inst.Type),
		year, rank, fees, string(courses), string(facilities), placement)
	if err != nil {
		return fmt.Errorf("insert institution %s: %w", inst.ID, err)
	}

	for exam, branches := range inst.Cutoffs {
		for branch, cutoff := range branches {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cutoffs (institution_id, exam, branch, cutoff) VALUES (?, ?, ?, ?)`,
				inst.ID, string(exam), branch, cutoff)
			if err != nil {
				return fmt.Errorf("insert cutoff %s/%s/%s: %w", inst.ID, exam, branch, err)
			}
		}
	}
	return nil
}

// Reload re-imports the seed file.
func (s *DuckDBStore) Reload(ctx context.Context) (int, error) {
	if s.seedPath == "" {
		return 0, errors.New("catalog has no seed file")
	}
	insts, err := LoadFile(s.seedPath)
	if err == nil {
		err = s.Import(ctx, insts)
	}
	metrics.RecordCatalogReload(len(insts), err)
	if err != nil {
		return 0, fmt.Errorf("reload catalog: %w", err)
	}
	return len(insts), nil
}

func (s *DuckDBStore) Query(ctx context.Context, f Filter) ([]models.Institution, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogQueryDuration.WithLabelValues("duckdb").Observe(time.Since(start).Seconds())
	}()

	where, args := filterClause(f)
	return s.load(ctx, where, args)
}

func (s *DuckDBStore) Get(ctx context.Context, id string) (*models.Institution, error) {
	insts, err := s.load(ctx, "id = ?", []any{id})
	if err != nil {
		return nil, err
	}
	if len(insts) == 0 {
		return nil, ErrNotFound
	}
	return &insts[0], nil
}

func filterClause(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Region != "" {
		conds = append(conds, "lower(region) = lower(?)")
		args = append(args, f.Region)
	}
	if f.Type != "" {
		conds = append(conds, "inst_type = ?")
		args = append(args, string(f.Type))
	}
	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}

// load reads institutions matching where, then attaches their cutoffs.
func (s *DuckDBStore) load(ctx context.Context, where string, args []any) ([]models.Institution, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, name, city, region, inst_type, established_year, national_rank, fees, courses, facilities, placement
		FROM institutions WHERE `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query institutions: %w", err)
	}
	defer rows.Close()

	var (
		out   []models.Institution
		index = make(map[string]int)
	)
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, err
		}
		index[inst.ID] = len(out)
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate institutions: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	cutRows, err := s.conn.QueryContext(ctx, `
		SELECT institution_id, exam, branch, cutoff FROM cutoffs
		WHERE institution_id IN (SELECT id FROM institutions WHERE `+where+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query cutoffs: %w", err)
	}
	defer cutRows.Close()

	for cutRows.Next() {
		var (
			id, exam, branch string
			cutoff           float64
		)
		if err := cutRows.Scan(&id, &exam, &branch, &cutoff); err != nil {
			return nil, fmt.Errorf("scan cutoff: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		inst := &out[i]
		if inst.Cutoffs == nil {
			inst.Cutoffs = make(models.Cutoffs)
		}
		if inst.Cutoffs[models.ExamType(exam)] == nil {
			inst.Cutoffs[models.ExamType(exam)] = make(map[string]float64)
		}
		inst.Cutoffs[models.ExamType(exam)][branch] = cutoff
	}
	if err := cutRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cutoffs: %w", err)
	}
	return out, nil
}

func scanInstitution(rows *sql.Rows) (models.Institution, error) {
	var (
		inst                models.Institution
		typ                 string
		year, rank          sql.NullInt64
		fees                sql.NullFloat64
		courses, facilities string
		placement           sql.NullString
	)
	if err := rows.Scan(&inst.ID, &inst.Name, &inst.City, &inst.Region, &typ,
		&year, &rank, &fees, &courses, &facilities, &placement); err != nil {
		return inst, fmt.Errorf("scan institution: %w", err)
	}

	inst.Type = models.InstitutionType(typ)
	if year.Valid {
		inst.EstablishedYear = int(year.Int64)
	}
	if rank.Valid {
		r := int(rank.Int64)
		inst.Rank = &r
	}
	if fees.Valid {
		f := fees.Float64
		inst.Fees = &f
	}
	if err := json.Unmarshal([]byte(courses), &inst.Courses); err != nil {
		return inst, fmt.Errorf("decode courses for %s: %w", inst.ID, err)
	}
	if err := json.Unmarshal([]byte(facilities), &inst.Facilities); err != nil {
		return inst, fmt.Errorf("decode facilities for %s: %w", inst.ID, err)
	}
	if placement.Valid {
		var p models.PlacementStats
		if err := json.Unmarshal([]byte(placement.String), &p); err != nil {
			return inst, fmt.Errorf("decode placement for %s: %w", inst.ID, err)
		}
		inst.Placement = &p
	}
	return inst, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var (
	_ Store    = (*DuckDBStore)(nil)
	_ Reloader = (*DuckDBStore)(nil)
)
