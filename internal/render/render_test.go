package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sift/pkg/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"name", "age"},
		[][]table.Value{
			{table.Text("ada"), table.Number(70)},
			{table.Text("ben"), table.Missing()},
			{table.Text("cyd"), table.Number(80)},
		})
	require.NoError(t, err)
	return tbl
}

func TestTextOutput(t *testing.T) {
	out, err := String(sampleTable(t), Options{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "age")
	assert.Contains(t, lines[1], "<text>")
	assert.Contains(t, lines[1], "<number>")
	assert.Contains(t, lines[2], "ada")
	assert.Contains(t, lines[3], "NA")
}

func TestTextMaxRows(t *testing.T) {
	out, err := String(sampleTable(t), Options{MaxRows: 2})
	require.NoError(t, err)

	assert.NotContains(t, out, "cyd")
	assert.Contains(t, out, "... 1 more row(s)")
}

func TestTextShowsGroups(t *testing.T) {
	grouped, err := sampleTable(t).GroupBy("name")
	require.NoError(t, err)

	out, err := String(grouped, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "Groups: name")
}

func TestMarkdownOutput(t *testing.T) {
	out, err := String(sampleTable(t), Options{Markdown: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| name <text> | age <number> |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
	assert.Equal(t, "| ada | 70 |", lines[2])
	assert.Equal(t, "| ben | NA |", lines[3])
}

func TestMarkdownEscapesPipes(t *testing.T) {
	tbl, err := table.New([]string{"x"}, [][]table.Value{{table.Text("a|b")}})
	require.NoError(t, err)

	out, err := String(tbl, Options{Markdown: true})
	require.NoError(t, err)
	assert.Contains(t, out, `a\|b`)
}
