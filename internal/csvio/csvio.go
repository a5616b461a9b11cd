// Package csvio loads tables from and writes tables to CSV. The first
// record is the header; column kinds are inferred by scanning the cells
// below it. A cell matching one of the configured missing markers becomes
// the missing marker regardless of the column's kind.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"github.com/mesh-intelligence/sift/pkg/table"
)

// Options control reading. The zero value is usable; empty fields fall
// back to defaults.
type Options struct {
	// MissingMarkers are cell texts treated as missing. Default: "", "NA".
	MissingMarkers []string
	// TimeLayouts are tried in order when inferring a time column.
	// Default: RFC3339, "2006-01-02".
	TimeLayouts []string
}

func (o Options) missingMarkers() []string {
	if o.MissingMarkers == nil {
		return []string{"", "NA"}
	}
	return o.MissingMarkers
}

func (o Options) timeLayouts() []string {
	if o.TimeLayouts == nil {
		return []string{time.RFC3339, "2006-01-02"}
	}
	return o.TimeLayouts
}

// Read parses CSV from r into a table.
func Read(r io.Reader, opts Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv: no header record")
	}
	header := records[0]
	body := records[1:]

	missing := make(map[string]bool, len(opts.missingMarkers()))
	for _, m := range opts.missingMarkers() {
		missing[m] = true
	}

	kinds := make([]table.Kind, len(header))
	for j := range header {
		kinds[j] = inferColumnKind(body, j, missing, opts.timeLayouts())
	}

	rows := make([][]table.Value, len(body))
	for i, rec := range body {
		row := make([]table.Value, len(header))
		for j, cell := range rec {
			v, err := parseCell(cell, kinds[j], missing, opts.timeLayouts())
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, header[j], err)
			}
			row[j] = v
		}
		rows[i] = row
	}

	t, err := table.New(header, rows)
	if err != nil {
		return nil, fmt.Errorf("building table: %w", err)
	}
	return t, nil
}

// ReadFile parses the CSV file at path into a table.
func ReadFile(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// inferColumnKind picks the narrowest kind every non-missing cell of the
// column satisfies: number, then bool, then time, falling back to text.
// An all-missing column stays kindless.
func inferColumnKind(body [][]string, j int, missing map[string]bool, layouts []string) table.Kind {
	sawValue := false
	isNumber, isBool, isTime := true, true, true
	for _, rec := range body {
		if j >= len(rec) || missing[rec[j]] {
			continue
		}
		sawValue = true
		cell := rec[j]
		if isNumber {
			if _, err := cast.ToFloat64E(cell); err != nil {
				isNumber = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(cell); err != nil {
				isBool = false
			}
		}
		if isTime && !parsesAsTime(cell, layouts) {
			isTime = false
		}
		if !isNumber && !isBool && !isTime {
			return table.KindText
		}
	}
	switch {
	case !sawValue:
		return table.KindMissing
	case isNumber:
		return table.KindNumber
	case isBool:
		return table.KindBool
	case isTime:
		return table.KindTime
	default:
		return table.KindText
	}
}

func parsesAsTime(cell string, layouts []string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return true
		}
	}
	return false
}

func parseCell(cell string, kind table.Kind, missing map[string]bool, layouts []string) (table.Value, error) {
	if missing[cell] {
		return table.Missing(), nil
	}
	switch kind {
	case table.KindNumber:
		f, err := cast.ToFloat64E(cell)
		if err != nil {
			return table.Missing(), fmt.Errorf("parsing number %q: %w", cell, err)
		}
		return table.Number(f), nil
	case table.KindBool:
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return table.Missing(), fmt.Errorf("parsing bool %q: %w", cell, err)
		}
		return table.Bool(b), nil
	case table.KindTime:
		for _, layout := range layouts {
			if ts, err := time.Parse(layout, cell); err == nil {
				return table.Time(ts), nil
			}
		}
		return table.Missing(), fmt.Errorf("parsing time %q: no layout matched", cell)
	default:
		return table.Text(cell), nil
	}
}

// Write renders t as CSV with a header record. Missing cells write as the
// empty string.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	cols := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		rec := make([]string, len(cols))
		row := t.Row(i)
		for j := range cols {
			if row[j].IsMissing() {
				rec[j] = ""
				continue
			}
			rec[j] = row[j].String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile renders t as CSV into the file at path.
func WriteFile(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
