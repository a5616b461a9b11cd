package table

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrangeAscending(t *testing.T) {
	got, err := ages(t).Arrange(Asc("age"))
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 64, 65, 70, 80}, agesOf(t, got))
}

func TestArrangeDescending(t *testing.T) {
	got, err := ages(t).Arrange(Desc("age"))
	require.NoError(t, err)
	assert.Equal(t, []float64{80, 70, 65, 64, 30}, agesOf(t, got))
}

func TestArrangeIsPermutation(t *testing.T) {
	in := ages(t)
	got, err := in.Arrange(Desc("age"))
	require.NoError(t, err)

	want := agesOf(t, in)
	have := agesOf(t, got)
	sort.Float64s(want)
	sort.Float64s(have)
	assert.Equal(t, want, have)
}

func TestArrangeStable(t *testing.T) {
	tbl := mustNew(t, []string{"grp", "ord"}, [][]Value{
		{Text("a"), Number(1)},
		{Text("b"), Number(2)},
		{Text("a"), Number(3)},
		{Text("b"), Number(4)},
	})
	got, err := tbl.Arrange(Asc("grp"))
	require.NoError(t, err)

	var ords []float64
	for i := 0; i < got.NumRows(); i++ {
		v, err := got.Value(i, "ord")
		require.NoError(t, err)
		ords = append(ords, v.Num())
	}
	assert.Equal(t, []float64{1, 3, 2, 4}, ords, "ties keep original relative order")
}

func TestArrangeSecondaryKey(t *testing.T) {
	tbl := mustNew(t, []string{"grp", "ord"}, [][]Value{
		{Text("a"), Number(3)},
		{Text("b"), Number(2)},
		{Text("a"), Number(1)},
	})
	got, err := tbl.Arrange(Asc("grp"), Desc("ord"))
	require.NoError(t, err)

	var out [][2]string
	for i := 0; i < got.NumRows(); i++ {
		g, _ := got.Value(i, "grp")
		o, _ := got.Value(i, "ord")
		out = append(out, [2]string{g.Str(), o.String()})
	}
	assert.Equal(t, [][2]string{{"a", "3"}, {"a", "1"}, {"b", "2"}}, out)
}

func TestArrangeMissingSortsLastBothDirections(t *testing.T) {
	tbl := mustNew(t, []string{"x"}, [][]Value{
		{Missing()},
		{Number(2)},
		{Number(1)},
	})

	asc, err := tbl.Arrange(Asc("x"))
	require.NoError(t, err)
	last, _ := asc.Value(2, "x")
	assert.True(t, last.IsMissing())

	desc, err := tbl.Arrange(Desc("x"))
	require.NoError(t, err)
	first, _ := desc.Value(0, "x")
	assert.Equal(t, Number(2), first)
	last, _ = desc.Value(2, "x")
	assert.True(t, last.IsMissing())
}

func TestArrangeUnknownColumn(t *testing.T) {
	_, err := ages(t).Arrange(Asc("nope"))
	assert.ErrorIs(t, err, ErrColumnNotFound)
}
