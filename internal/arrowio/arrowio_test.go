package arrowio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sift/pkg/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	joined := time.Date(2020, 1, 15, 12, 30, 0, 0, time.UTC)
	tbl, err := table.New(
		[]string{"name", "age", "active", "joined"},
		[][]table.Value{
			{table.Text("ada"), table.Number(70), table.Bool(true), table.Time(joined)},
			{table.Text("ben"), table.Missing(), table.Bool(false), table.Missing()},
			{table.Missing(), table.Number(80), table.Missing(), table.Time(joined.Add(time.Hour))},
		})
	require.NoError(t, err)
	return tbl
}

func TestSchemaMapsKinds(t *testing.T) {
	schema, err := Schema(sampleTable(t))
	require.NoError(t, err)

	tests := []struct {
		field int
		want  arrow.DataType
	}{
		{0, arrow.BinaryTypes.String},
		{1, arrow.PrimitiveTypes.Float64},
		{2, arrow.FixedWidthTypes.Boolean},
		{3, arrow.FixedWidthTypes.Timestamp_us},
	}
	for _, tt := range tests {
		f := schema.Field(tt.field)
		assert.True(t, arrow.TypeEqual(tt.want, f.Type), f.Name)
		assert.True(t, f.Nullable, f.Name)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	orig := sampleTable(t)

	rec, err := ToRecord(orig)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())

	back, err := FromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, orig.Columns(), back.Columns())
	require.Equal(t, orig.NumRows(), back.NumRows())
	for i := 0; i < orig.NumRows(); i++ {
		want, got := orig.Row(i), back.Row(i)
		for j := range want {
			assertSameCell(t, want[j], got[j], i, j)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	orig := sampleTable(t)
	path := filepath.Join(t.TempDir(), "sample.arrow")

	require.NoError(t, WriteFile(path, orig))

	back, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, orig.Columns(), back.Columns())
	require.Equal(t, orig.NumRows(), back.NumRows())
	for i := 0; i < orig.NumRows(); i++ {
		want, got := orig.Row(i), back.Row(i)
		for j := range want {
			assertSameCell(t, want[j], got[j], i, j)
		}
	}
}

func TestReadFileMissingPath(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.arrow"))
	assert.Error(t, err)
}

// assertSameCell compares cells by instant for times so location and
// internal representation differences from the Arrow round trip do not
// matter.
func assertSameCell(t *testing.T, want, got table.Value, i, j int) {
	t.Helper()
	require.Equal(t, want.Kind(), got.Kind(), "row %d col %d", i, j)
	if want.Kind() == table.KindTime {
		assert.True(t, want.Time().Equal(got.Time()), "row %d col %d: %v != %v", i, j, want.Time(), got.Time())
		return
	}
	assert.Equal(t, want, got, "row %d col %d", i, j)
}
