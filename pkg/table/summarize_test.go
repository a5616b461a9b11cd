package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incarceration(t *testing.T) *Table {
	t.Helper()
	return mustNew(t, []string{"race", "weeks"}, [][]Value{
		{Text("W"), Number(10)},
		{Text("B"), Number(4)},
		{Text("W"), Number(2)},
		{Text("B"), Number(9)},
		{Text("W"), Number(6)},
	})
}

func TestSummarizeUngroupedSingleRow(t *testing.T) {
	got, err := incarceration(t).Summarize(
		Count("n"),
		Mean("avg", "weeks"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"n", "avg"}, got.Columns())
	require.Equal(t, 1, got.NumRows())

	n, _ := got.Value(0, "n")
	avg, _ := got.Value(0, "avg")
	assert.Equal(t, Number(5), n)
	assert.InDelta(t, 6.2, avg.Num(), 1e-12)
}

func TestSummarizeGroupCounts(t *testing.T) {
	grouped, err := incarceration(t).GroupBy("race")
	require.NoError(t, err)
	got, err := grouped.Summarize(Count("count"))
	require.NoError(t, err)

	assert.Equal(t, []string{"race", "count"}, got.Columns())
	require.Equal(t, 2, got.NumRows())

	// Groups come out ordered by key value ascending.
	r0, _ := got.Value(0, "race")
	c0, _ := got.Value(0, "count")
	r1, _ := got.Value(1, "race")
	c1, _ := got.Value(1, "count")
	assert.Equal(t, Text("B"), r0)
	assert.Equal(t, Number(2), c0)
	assert.Equal(t, Text("W"), r1)
	assert.Equal(t, Number(3), c1)
}

func TestSummarizeRowCountMatchesDistinctKeys(t *testing.T) {
	grouped, err := incarceration(t).GroupBy("race", "weeks")
	require.NoError(t, err)
	got, err := grouped.Summarize(Count("n"))
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumRows())
}

func TestSummarizeMissingPoisonsByDefault(t *testing.T) {
	tbl := mustNew(t, []string{"x"}, [][]Value{
		{Number(1)},
		{Missing()},
		{Number(3)},
	})

	got, err := tbl.Summarize(Mean("avg", "x"))
	require.NoError(t, err)
	v, _ := got.Value(0, "avg")
	assert.True(t, v.IsMissing(), "a missing cell makes the aggregate missing by default")

	got, err = tbl.Summarize(Mean("avg", "x", IgnoreMissing()))
	require.NoError(t, err)
	v, _ = got.Value(0, "avg")
	assert.Equal(t, Number(2), v)
}

func TestSummarizeAggregates(t *testing.T) {
	tbl := mustNew(t, []string{"x"}, [][]Value{
		{Number(4)}, {Number(1)}, {Number(3)}, {Number(2)},
	})
	got, err := tbl.Summarize(
		Sum("sum", "x"),
		Median("med", "x"),
		Min("min", "x"),
		Max("max", "x"),
		First("first", "x"),
		NDistinct("nd", "x"),
	)
	require.NoError(t, err)

	want := map[string]float64{"sum": 10, "med": 2.5, "min": 1, "max": 4, "first": 4, "nd": 4}
	for col, exp := range want {
		v, err := got.Value(0, col)
		require.NoError(t, err)
		assert.Equal(t, Number(exp), v, col)
	}
}

func TestSummarizeMinOnText(t *testing.T) {
	tbl := mustNew(t, []string{"s"}, [][]Value{{Text("b")}, {Text("a")}})
	got, err := tbl.Summarize(Min("first", "s"))
	require.NoError(t, err)
	v, _ := got.Value(0, "first")
	assert.Equal(t, Text("a"), v)
}

func TestSummarizeSumOnTextFails(t *testing.T) {
	tbl := mustNew(t, []string{"s"}, [][]Value{{Text("a")}})
	_, err := tbl.Summarize(Sum("sum", "s"))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSummarizeUnknownColumn(t *testing.T) {
	_, err := incarceration(t).Summarize(Mean("avg", "nope"))
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestSummarizeNameCollidesWithGroupKey(t *testing.T) {
	grouped, err := incarceration(t).GroupBy("race")
	require.NoError(t, err)
	_, err = grouped.Summarize(Count("race"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestSummarizeResultIsUngrouped(t *testing.T) {
	grouped, err := incarceration(t).GroupBy("race")
	require.NoError(t, err)
	got, err := grouped.Summarize(Count("n"))
	require.NoError(t, err)
	assert.False(t, got.Grouped())
}

func TestSummarizeMissingKeyGroupSortsLast(t *testing.T) {
	tbl := mustNew(t, []string{"k", "x"}, [][]Value{
		{Missing(), Number(1)},
		{Text("a"), Number(2)},
	})
	grouped, err := tbl.GroupBy("k")
	require.NoError(t, err)
	got, err := grouped.Summarize(Count("n"))
	require.NoError(t, err)

	require.Equal(t, 2, got.NumRows())
	k0, _ := got.Value(0, "k")
	k1, _ := got.Value(1, "k")
	assert.Equal(t, Text("a"), k0)
	assert.True(t, k1.IsMissing())
}
