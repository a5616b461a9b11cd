// Tables command: list tables in the SQLite store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in the SQLite store",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func runTables(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No tables found.")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
