package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustNew builds a table or fails the test.
func mustNew(t *testing.T, cols []string, rows [][]Value) *Table {
	t.Helper()
	tbl, err := New(cols, rows)
	require.NoError(t, err)
	return tbl
}

// ages is the five-row fixture used across the verb tests.
func ages(t *testing.T) *Table {
	t.Helper()
	return mustNew(t, []string{"name", "age"}, [][]Value{
		{Text("ada"), Number(70)},
		{Text("ben"), Number(64)},
		{Text("cyd"), Number(80)},
		{Text("dee"), Number(65)},
		{Text("eli"), Number(30)},
	})
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []string
		rows    [][]Value
		wantErr error
	}{
		{
			name: "valid",
			cols: []string{"a", "b"},
			rows: [][]Value{{Number(1), Text("x")}},
		},
		{
			name:    "duplicate column",
			cols:    []string{"a", "a"},
			rows:    nil,
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "empty column name",
			cols:    []string{""},
			rows:    nil,
			wantErr: ErrInvalidName,
		},
		{
			name:    "ragged row",
			cols:    []string{"a", "b"},
			rows:    [][]Value{{Number(1)}},
			wantErr: ErrRaggedRow,
		},
		{
			name:    "mixed kinds in one column",
			cols:    []string{"a"},
			rows:    [][]Value{{Number(1)}, {Text("x")}},
			wantErr: ErrTypeMismatch,
		},
		{
			name: "missing cells do not fix a kind",
			cols: []string{"a"},
			rows: [][]Value{{Missing()}, {Number(2)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols, tt.rows)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTableAccessors(t *testing.T) {
	tbl := ages(t)
	assert.Equal(t, []string{"name", "age"}, tbl.Columns())
	assert.Equal(t, 5, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())

	k, err := tbl.Kind("age")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, k)

	v, err := tbl.Value(2, "age")
	require.NoError(t, err)
	assert.Equal(t, Number(80), v)

	_, err = tbl.Value(0, "nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTableRowIsACopy(t *testing.T) {
	tbl := ages(t)
	row := tbl.Row(0)
	row[1] = Number(0)

	v, err := tbl.Value(0, "age")
	require.NoError(t, err)
	assert.Equal(t, Number(70), v, "mutating a returned row must not touch the table")
}

func TestAllMissingColumnHasNoKind(t *testing.T) {
	tbl := mustNew(t, []string{"a"}, [][]Value{{Missing()}, {Missing()}})
	k, err := tbl.Kind("a")
	require.NoError(t, err)
	assert.Equal(t, KindMissing, k)
}
