// Package render turns tables into human-readable text. The plain format
// aligns columns with tabwriter the way a terminal listing would; the
// markdown format emits a GitHub-style pipe table. Both print a header
// row with the column kind underneath the name and cap the number of
// body rows, noting how many were omitted.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/sift/pkg/table"
)

// Options control rendering. The zero value renders plain text with no
// row cap.
type Options struct {
	// MaxRows caps the number of body rows printed. 0 means no cap.
	MaxRows int
	// Markdown switches to pipe-table output.
	Markdown bool
}

// Write renders t to w according to opts.
func Write(w io.Writer, t *table.Table, opts Options) error {
	if opts.Markdown {
		return writeMarkdown(w, t, opts.MaxRows)
	}
	return writeText(w, t, opts.MaxRows)
}

// String renders t with opts into a string.
func String(t *table.Table, opts Options) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, t, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func headerRows(t *table.Table) ([]string, []string, error) {
	cols := t.Columns()
	kinds := make([]string, len(cols))
	for j, c := range cols {
		k, err := t.Kind(c)
		if err != nil {
			return nil, nil, err
		}
		kinds[j] = "<" + k.String() + ">"
	}
	return cols, kinds, nil
}

func bodyRows(t *table.Table, maxRows int) ([][]string, int) {
	n := t.NumRows()
	shown := n
	if maxRows > 0 && maxRows < n {
		shown = maxRows
	}
	body := make([][]string, shown)
	for i := 0; i < shown; i++ {
		row := t.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		body[i] = cells
	}
	return body, n - shown
}

func writeText(w io.Writer, t *table.Table, maxRows int) error {
	cols, kinds, err := headerRows(t)
	if err != nil {
		return err
	}
	body, omitted := bodyRows(t, maxRows)

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	fmt.Fprintln(tw, strings.Join(kinds, "\t"))
	for _, cells := range body {
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	if groups := t.Groups(); groups != nil {
		if _, err := fmt.Fprintf(w, "Groups: %s\n", strings.Join(groups, ", ")); err != nil {
			return err
		}
	}
	if omitted > 0 {
		if _, err := fmt.Fprintf(w, "... %d more row(s)\n", omitted); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, t *table.Table, maxRows int) error {
	cols, kinds, err := headerRows(t)
	if err != nil {
		return err
	}
	body, omitted := bodyRows(t, maxRows)

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for j := range cols {
		header[j] = cols[j] + " " + kinds[j]
		rule[j] = "---"
	}
	if _, err := fmt.Fprintln(w, "| "+strings.Join(header, " | ")+" |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| "+strings.Join(rule, " | ")+" |"); err != nil {
		return err
	}
	for _, cells := range body {
		escaped := make([]string, len(cells))
		for j, c := range cells {
			escaped[j] = strings.ReplaceAll(c, "|", `\|`)
		}
		if _, err := fmt.Fprintln(w, "| "+strings.Join(escaped, " | ")+" |"); err != nil {
			return err
		}
	}
	if omitted > 0 {
		if _, err := fmt.Fprintf(w, "\n... %d more row(s)\n", omitted); err != nil {
			return err
		}
	}
	return nil
}
