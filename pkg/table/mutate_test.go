package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateAddsColumn(t *testing.T) {
	got, err := ages(t).Mutate(Assign("double", Mul(Col("age"), Lit(Number(2)))))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "double"}, got.Columns())
	v, err := got.Value(0, "double")
	require.NoError(t, err)
	assert.Equal(t, Number(140), v)
}

func TestMutatePreservesRowCountAndOrder(t *testing.T) {
	in := ages(t)
	got, err := in.Mutate(Assign("x", Lit(Number(1))))
	require.NoError(t, err)
	assert.Equal(t, in.NumRows(), got.NumRows())
	assert.Equal(t, agesOf(t, in), agesOf(t, got))
}

func TestMutateSequentialVisibility(t *testing.T) {
	got, err := ages(t).Mutate(
		Assign("a", Add(Col("age"), Lit(Number(1)))),
		Assign("b", Mul(Col("a"), Lit(Number(10)))),
	)
	require.NoError(t, err)
	v, err := got.Value(0, "b")
	require.NoError(t, err)
	assert.Equal(t, Number(710), v)
}

func TestMutateLaterAssignmentNotVisibleEarlier(t *testing.T) {
	_, err := ages(t).Mutate(
		Assign("a", Col("b")),
		Assign("b", Lit(Number(1))),
	)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestMutateOverwriteKeepsPosition(t *testing.T) {
	got, err := ages(t).Mutate(Assign("age", Add(Col("age"), Lit(Number(1)))))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, got.Columns())
	assert.Equal(t, []float64{71, 65, 81, 66, 31}, agesOf(t, got))
}

func TestMutateMissingPropagates(t *testing.T) {
	tbl := mustNew(t, []string{"x"}, [][]Value{{Number(1)}, {Missing()}})
	got, err := tbl.Mutate(Assign("y", Add(Col("x"), Lit(Number(1)))))
	require.NoError(t, err)

	v, err := got.Value(1, "y")
	require.NoError(t, err)
	assert.True(t, v.IsMissing())
}

func TestMutateGroupScoped(t *testing.T) {
	tbl := mustNew(t, []string{"grp", "x"}, [][]Value{
		{Text("a"), Number(1)},
		{Text("b"), Number(10)},
		{Text("a"), Number(3)},
	})
	grouped, err := tbl.GroupBy("grp")
	require.NoError(t, err)

	got, err := grouped.Mutate(
		Assign("share", Div(Col("x"), GroupSum("x"))),
		Assign("pos", RowNumber()),
	)
	require.NoError(t, err)

	share0, _ := got.Value(0, "share")
	share2, _ := got.Value(2, "share")
	assert.InDelta(t, 0.25, share0.Num(), 1e-12)
	assert.InDelta(t, 0.75, share2.Num(), 1e-12)

	pos1, _ := got.Value(1, "pos")
	pos2, _ := got.Value(2, "pos")
	assert.Equal(t, Number(1), pos1, "first row of group b")
	assert.Equal(t, Number(2), pos2, "second row of group a")
}

func TestMutateMixedKinds(t *testing.T) {
	tbl := mustNew(t, []string{"x"}, [][]Value{{Number(1)}, {Number(2)}})
	cond := func(e *Env) (Value, error) {
		v, err := e.Value("x")
		if err != nil {
			return Missing(), err
		}
		if v.Num() > 1 {
			return Text("big"), nil
		}
		return Number(0), nil
	}
	_, err := tbl.Mutate(Assign("y", cond))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMutateEmptyName(t *testing.T) {
	_, err := ages(t).Mutate(Assign("", Lit(Number(1))))
	assert.ErrorIs(t, err, ErrInvalidName)
}
