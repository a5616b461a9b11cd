package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByAnnotationOnly(t *testing.T) {
	in := ages(t)
	got, err := in.GroupBy("name")
	require.NoError(t, err)

	assert.Equal(t, []string{"name"}, got.Groups())
	assert.True(t, got.Grouped())
	assert.Equal(t, in.NumRows(), got.NumRows(), "grouping neither filters nor reorders")
	assert.Equal(t, agesOf(t, in), agesOf(t, got))
	assert.Nil(t, in.Groups(), "input stays ungrouped")
}

func TestGroupByUnknownColumn(t *testing.T) {
	_, err := ages(t).GroupBy("nope")
	assert.ErrorIs(t, err, ErrGroupKeyMissing)
}

func TestGroupByDuplicateKey(t *testing.T) {
	_, err := ages(t).GroupBy("name", "name")
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestUngroup(t *testing.T) {
	grouped, err := ages(t).GroupBy("name")
	require.NoError(t, err)
	got := grouped.Ungroup()
	assert.False(t, got.Grouped())
	assert.Equal(t, grouped.NumRows(), got.NumRows())
}

func TestPartitionSeparatorBytesInTextKeys(t *testing.T) {
	// Two key tuples whose concatenated bytes would coincide if the
	// separator byte inside a text payload were taken at face value.
	tbl := mustNew(t, []string{"a", "b", "x"}, [][]Value{
		{Text("p\x1f"), Text("q"), Number(1)},
		{Text("p"), Text("\x1fq"), Number(2)},
	})
	grouped, err := tbl.GroupBy("a", "b")
	require.NoError(t, err)

	parts, _, _, err := grouped.partitionRows()
	require.NoError(t, err)
	assert.Len(t, parts, 2, "distinct key tuples stay distinct groups")
}

func TestPartitionMissingKeysShareAGroup(t *testing.T) {
	tbl := mustNew(t, []string{"k", "x"}, [][]Value{
		{Missing(), Number(1)},
		{Text("a"), Number(2)},
		{Missing(), Number(3)},
	})
	grouped, err := tbl.GroupBy("k")
	require.NoError(t, err)

	parts, _, _, err := grouped.partitionRows()
	require.NoError(t, err)
	assert.Len(t, parts, 2, "missing keys partition together by marker identity")
}
