// Package sqlite persists tables into a SQLite database file and loads
// them back. Each saved table gets a plain SQL table plus entries in a
// registry table recording column order and kinds, so a reload reproduces
// the original table exactly (SQLite's own column affinities are too loose
// to round-trip kinds).
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/sift/pkg/table"
)

// Store errors.
var (
	ErrTableNotFound = errors.New("table not found in store")
)

// registryDDL holds column order and kind per saved table.
const registryDDL = `
CREATE TABLE IF NOT EXISTS sift_columns (
	table_name  TEXT NOT NULL,
	position    INTEGER NOT NULL,
	column_name TEXT NOT NULL,
	kind        TEXT NOT NULL,
	PRIMARY KEY (table_name, position)
)`

// Store is a handle on one SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the registry
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(registryDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating registry: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes t under the given name, replacing any previous table of that
// name. An empty name gets a generated one. Returns the name used.
func (s *Store) Save(name string, t *table.Table) (string, error) {
	if name == "" {
		name = "t_" + strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + quoteIdent(name)); err != nil {
		return "", fmt.Errorf("dropping previous table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sift_columns WHERE table_name = ?", name); err != nil {
		return "", fmt.Errorf("clearing registry: %w", err)
	}

	cols := t.Columns()
	defs := make([]string, len(cols))
	kinds := make([]table.Kind, len(cols))
	for j, c := range cols {
		k, err := t.Kind(c)
		if err != nil {
			return "", err
		}
		kinds[j] = k
		defs[j] = quoteIdent(c) + " " + sqlType(k)
		if _, err := tx.Exec(
			"INSERT INTO sift_columns (table_name, position, column_name, kind) VALUES (?, ?, ?, ?)",
			name, j, c, k.String()); err != nil {
			return "", fmt.Errorf("registering column %q: %w", c, err)
		}
	}
	ddl := "CREATE TABLE " + quoteIdent(name) + " (" + strings.Join(defs, ", ") + ")"
	if _, err := tx.Exec(ddl); err != nil {
		return "", fmt.Errorf("creating table %q: %w", name, err)
	}

	placeholders := make([]string, len(cols))
	for j := range placeholders {
		placeholders[j] = "?"
	}
	insert := "INSERT INTO " + quoteIdent(name) + " VALUES (" + strings.Join(placeholders, ", ") + ")"
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = toArg(v)
		}
		if _, err := tx.Exec(insert, args...); err != nil {
			return "", fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing save: %w", err)
	}
	return name, nil
}

// Load reads a saved table back, restoring column order and kinds from the
// registry. Returns ErrTableNotFound for names never saved.
func (s *Store) Load(name string) (*table.Table, error) {
	regRows, err := s.db.Query(
		"SELECT column_name, kind FROM sift_columns WHERE table_name = ? ORDER BY position", name)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	defer regRows.Close()

	var cols []string
	var kinds []table.Kind
	for regRows.Next() {
		var c, k string
		if err := regRows.Scan(&c, &k); err != nil {
			return nil, fmt.Errorf("scanning registry: %w", err)
		}
		cols = append(cols, c)
		kinds = append(kinds, kindFromString(k))
	}
	if err := regRows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q: %w", name, ErrTableNotFound)
	}

	quoted := make([]string, len(cols))
	for j, c := range cols {
		quoted[j] = quoteIdent(c)
	}
	rows, err := s.db.Query("SELECT " + strings.Join(quoted, ", ") + " FROM " + quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("reading table %q: %w", name, err)
	}
	defer rows.Close()

	var out [][]table.Value
	for rows.Next() {
		dests := make([]any, len(cols))
		for j := range dests {
			dests[j] = new(sql.NullString)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scanning table %q: %w", name, err)
		}
		row := make([]table.Value, len(cols))
		for j := range cols {
			ns := dests[j].(*sql.NullString)
			v, err := fromArg(*ns, kinds[j])
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", cols[j], err)
			}
			row[j] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	t, err := table.New(cols, out)
	if err != nil {
		return nil, fmt.Errorf("rebuilding table %q: %w", name, err)
	}
	return t, nil
}

// List returns the names of all saved tables.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT table_name FROM sift_columns ORDER BY table_name")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func sqlType(k table.Kind) string {
	switch k {
	case table.KindNumber:
		return "REAL"
	case table.KindBool:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func toArg(v table.Value) any {
	switch v.Kind() {
	case table.KindNumber:
		return v.Num()
	case table.KindBool:
		if v.Bool() {
			return 1
		}
		return 0
	case table.KindText:
		return v.Str()
	case table.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	default:
		return nil
	}
}

func fromArg(ns sql.NullString, k table.Kind) (table.Value, error) {
	if !ns.Valid {
		return table.Missing(), nil
	}
	switch k {
	case table.KindNumber:
		f, err := strconv.ParseFloat(ns.String, 64)
		if err != nil {
			return table.Missing(), fmt.Errorf("parsing number %q: %w", ns.String, err)
		}
		return table.Number(f), nil
	case table.KindBool:
		return table.Bool(ns.String != "0"), nil
	case table.KindTime:
		ts, err := time.Parse(time.RFC3339Nano, ns.String)
		if err != nil {
			return table.Missing(), fmt.Errorf("parsing time %q: %w", ns.String, err)
		}
		return table.Time(ts), nil
	default:
		return table.Text(ns.String), nil
	}
}

func kindFromString(s string) table.Kind {
	switch s {
	case "number":
		return table.KindNumber
	case "text":
		return table.KindText
	case "bool":
		return table.KindBool
	case "time":
		return table.KindTime
	default:
		return table.KindMissing
	}
}

// quoteIdent wraps an identifier in double quotes, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
