// Shared I/O helpers for sift CLI commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/sift/internal/arrowio"
	"github.com/mesh-intelligence/sift/internal/csvio"
	"github.com/mesh-intelligence/sift/internal/render"
	"github.com/mesh-intelligence/sift/internal/sqlite"
	"github.com/mesh-intelligence/sift/pkg/table"
)

// dbPrefix marks an input or output that names a table in the SQLite
// store instead of a file path.
const dbPrefix = "db:"

func csvOptions() csvio.Options {
	return csvio.Options{
		MissingMarkers: configMissingMarkers,
		TimeLayouts:    configTimeLayouts,
	}
}

// openStore opens the SQLite store at the resolved path. The caller must
// close it.
func openStore() (*sqlite.Store, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// readTable loads a table from arg: "db:NAME" reads from the SQLite
// store, "-" or "" reads CSV from stdin, anything else is a file path
// dispatched on extension (.csv, .arrow, .feather, .ipc).
func readTable(arg string) (*table.Table, error) {
	if name, ok := strings.CutPrefix(arg, dbPrefix); ok {
		store, err := openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		t, err := store.Load(name)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
		return t, nil
	}

	if arg == "" || arg == "-" {
		t, err := csvio.Read(os.Stdin, csvOptions())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return t, nil
	}

	switch filepath.Ext(arg) {
	case ".csv":
		return csvio.ReadFile(arg, csvOptions())
	case ".arrow", ".feather", ".ipc":
		return arrowio.ReadFile(arg)
	default:
		return nil, fmt.Errorf("unsupported input %q: want .csv, .arrow, .feather, .ipc, or %sNAME", arg, dbPrefix)
	}
}

// writeTable stores t at out: "db:NAME" saves to the SQLite store, "" or
// "-" renders to stdout in the configured format, anything else is a
// file path dispatched on extension.
func writeTable(out string, t *table.Table) error {
	if name, ok := strings.CutPrefix(out, dbPrefix); ok {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		saved, err := store.Save(name, t)
		if err != nil {
			return fmt.Errorf("save %q: %w", name, err)
		}
		fmt.Println("saved", dbPrefix+saved)
		return nil
	}

	if out == "" || out == "-" {
		return renderStdout(t)
	}

	switch filepath.Ext(out) {
	case ".csv":
		return csvio.WriteFile(out, t)
	case ".arrow", ".feather", ".ipc":
		return arrowio.WriteFile(out, t)
	default:
		return fmt.Errorf("unsupported output %q: want .csv, .arrow, .feather, .ipc, or %sNAME", out, dbPrefix)
	}
}

func renderStdout(t *table.Table) error {
	switch outputFormat() {
	case "csv":
		return csvio.Write(os.Stdout, t)
	case "markdown":
		return render.Write(os.Stdout, t, render.Options{MaxRows: maxRows(), Markdown: true})
	case "text", "":
		return render.Write(os.Stdout, t, render.Options{MaxRows: maxRows()})
	default:
		return fmt.Errorf("unknown format %q: want text, markdown, or csv", outputFormat())
	}
}

// withGroups applies the --by grouping, runs op, and ungroups the result
// when the input was ungrouped to begin with.
func withGroups(t *table.Table, by string, op table.Op) (*table.Table, error) {
	if by == "" {
		return op(t)
	}
	cols := splitColumns(by)
	return table.Pipe(t, table.Grouping(cols...), op, table.Ungrouping())
}

func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
