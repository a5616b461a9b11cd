// Root command for the sift CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/internal/paths"
	"github.com/mesh-intelligence/sift/pkg/sift"
)

// Global flag values.
var (
	flagConfigDir string
	flagDB        string
	flagFormat    string
	flagMaxRows   int
)

// configDBPath holds the db_path value loaded from config.yaml. Set by
// PersistentPreRunE so all subcommands can use it.
var configDBPath string

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Sift transforms tabular data with composable verbs",
	Long: `Sift reads tables from CSV, Arrow IPC, or a SQLite store and
transforms them with filter, arrange, select, mutate, summarize, and
join. Inputs are file paths, "-" for stdin CSV, or "db:NAME" for a
table in the SQLite store.`,
	Version: sift.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		applyConfig(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.sift)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite store path (default: $(CWD)/sift.db)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "stdout format: text, markdown, or csv")
	rootCmd.PersistentFlags().IntVar(&flagMaxRows, "max-rows", -1, "cap on rows printed to stdout (0 = no cap)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(arrangeCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(mutateCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tablesCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > SIFT_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDBPath returns the SQLite store path following the precedence
// chain: --db flag > config.yaml db_path > SIFT_DB env > default.
func resolveDBPath() (string, error) {
	return paths.ResolveDBPath(flagDB, configDBPath)
}
