package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sift/pkg/table"
)

func TestParseJoinKeys(t *testing.T) {
	keys, err := parseJoinKeys("id, name=person_name")
	require.NoError(t, err)
	assert.Equal(t, []table.JoinKey{
		table.On("id"),
		table.OnColumns("name", "person_name"),
	}, keys)

	keys, err = parseJoinKeys("")
	require.NoError(t, err)
	assert.Nil(t, keys)

	_, err = parseJoinKeys("id,,name")
	assert.Error(t, err)

	_, err = parseJoinKeys("id=")
	assert.Error(t, err)
}

func TestJoinKindFromName(t *testing.T) {
	tests := []struct {
		name string
		want table.JoinKind
	}{
		{"inner", table.InnerJoin},
		{"left", table.LeftJoin},
		{"right", table.RightJoin},
		{"full", table.FullJoin},
		{"semi", table.SemiJoin},
		{"anti", table.AntiJoin},
	}
	for _, tt := range tests {
		got, err := joinKindFromName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := joinKindFromName("cross")
	assert.Error(t, err)
}

func TestKindFromName(t *testing.T) {
	k, err := kindFromName("number")
	require.NoError(t, err)
	assert.Equal(t, table.KindNumber, k)

	_, err = kindFromName("float")
	assert.Error(t, err)
}

func TestSplitColumns(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitColumns("a, b"))
	assert.Equal(t, []string{"a"}, splitColumns("a,"))
	assert.Empty(t, splitColumns(""))
}
