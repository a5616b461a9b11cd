// Package arrowio converts tables to and from Apache Arrow records and
// reads/writes them as Arrow IPC files. Kinds map to Arrow types as
// float64, utf8, bool, and microsecond UTC timestamps; missing cells map
// to Arrow nulls. A column with no kind (all cells missing) travels as a
// null utf8 column.
package arrowio

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/mesh-intelligence/sift/pkg/table"
)

// Schema maps t's columns to an Arrow schema. Every field is nullable.
func Schema(t *table.Table) (*arrow.Schema, error) {
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for j, c := range cols {
		k, err := t.Kind(c)
		if err != nil {
			return nil, err
		}
		fields[j] = arrow.Field{Name: c, Type: arrowType(k), Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

func arrowType(k table.Kind) arrow.DataType {
	switch k {
	case table.KindNumber:
		return arrow.PrimitiveTypes.Float64
	case table.KindBool:
		return arrow.FixedWidthTypes.Boolean
	case table.KindTime:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

// ToRecord builds an Arrow record holding t's rows. The caller owns the
// returned record and must Release it.
func ToRecord(t *table.Table) (arrow.Record, error) {
	schema, err := Schema(t)
	if err != nil {
		return nil, err
	}
	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	cols := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		for j := range cols {
			v := row[j]
			if v.IsMissing() {
				b.Field(j).AppendNull()
				continue
			}
			switch fb := b.Field(j).(type) {
			case *array.Float64Builder:
				fb.Append(v.Num())
			case *array.BooleanBuilder:
				fb.Append(v.Bool())
			case *array.TimestampBuilder:
				fb.Append(arrow.Timestamp(v.Time().UnixMicro()))
			case *array.StringBuilder:
				fb.Append(v.Str())
			default:
				return nil, fmt.Errorf("column %q: unsupported builder %T", cols[j], fb)
			}
		}
	}
	return b.NewRecord(), nil
}

// FromRecord rebuilds a table from an Arrow record. Unsupported Arrow
// column types are an error; nulls become missing markers.
func FromRecord(rec arrow.Record) (*table.Table, error) {
	schema := rec.Schema()
	cols := make([]string, schema.NumFields())
	for j, f := range schema.Fields() {
		cols[j] = f.Name
	}

	n := int(rec.NumRows())
	rows := make([][]table.Value, n)
	for i := range rows {
		rows[i] = make([]table.Value, len(cols))
	}

	for j, col := range rec.Columns() {
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				rows[i][j] = table.Missing()
				continue
			}
			switch arr := col.(type) {
			case *array.Float64:
				rows[i][j] = table.Number(arr.Value(i))
			case *array.Boolean:
				rows[i][j] = table.Bool(arr.Value(i))
			case *array.Timestamp:
				dt := arr.DataType().(*arrow.TimestampType)
				rows[i][j] = table.Time(arr.Value(i).ToTime(dt.Unit))
			case *array.String:
				rows[i][j] = table.Text(arr.Value(i))
			default:
				return nil, fmt.Errorf("column %q: unsupported arrow type %s", cols[j], col.DataType())
			}
		}
	}

	t, err := table.New(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("rebuilding table: %w", err)
	}
	return t, nil
}

// WriteFile writes t to path as a single-record Arrow IPC file.
func WriteFile(path string, t *table.Table) error {
	rec, err := ToRecord(t)
	if err != nil {
		return err
	}
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()))
	if err != nil {
		f.Close()
		return fmt.Errorf("creating ipc writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		f.Close()
		return fmt.Errorf("writing record: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing ipc writer: %w", err)
	}
	return f.Close()
}

// ReadFile reads an Arrow IPC file back into a table, concatenating all
// records in the file.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating ipc reader: %w", err)
	}
	defer r.Close()

	var out *table.Table
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", i, err)
		}
		t, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = t
			continue
		}
		out, err = appendRows(out, t)
		if err != nil {
			return nil, err
		}
	}
	if out == nil {
		return nil, fmt.Errorf("%s: no records", path)
	}
	return out, nil
}

func appendRows(a, b *table.Table) (*table.Table, error) {
	rows := make([][]table.Value, 0, a.NumRows()+b.NumRows())
	for i := 0; i < a.NumRows(); i++ {
		rows = append(rows, a.Row(i))
	}
	for i := 0; i < b.NumRows(); i++ {
		rows = append(rows, b.Row(i))
	}
	return table.New(a.Columns(), rows)
}
