// Config loading for the sift CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDBPath         = "db_path"
	cfgKeyFormat         = "format"
	cfgKeyMaxRows        = "max_rows"
	cfgKeyMissingMarkers = "missing_markers"
	cfgKeyTimeLayouts    = "time_layouts"

	defaultFormat  = "text"
	defaultMaxRows = 50
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Sift CLI configuration

# Stdout format: text, markdown, or csv
format: text

# Cap on rows printed to stdout (0 = no cap)
max_rows: 50

# SQLite store path (optional; overridable by --db flag)
# db_path:

# Cell texts read as missing from CSV input
# missing_markers: ["", "NA"]

# Time layouts tried when inferring CSV time columns
# time_layouts: ["2006-01-02T15:04:05Z07:00", "2006-01-02"]
`

// Values loaded from config.yaml, post flag merging.
var (
	configFormat         string
	configMaxRows        int
	configMissingMarkers []string
	configTimeLayouts    []string
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyFormat, defaultFormat)
	v.SetDefault(cfgKeyMaxRows, defaultMaxRows)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// applyConfig captures the config values subcommands use.
func applyConfig(v *viper.Viper) {
	configDBPath = v.GetString(cfgKeyDBPath)
	configFormat = v.GetString(cfgKeyFormat)
	configMaxRows = v.GetInt(cfgKeyMaxRows)
	configMissingMarkers = v.GetStringSlice(cfgKeyMissingMarkers)
	configTimeLayouts = v.GetStringSlice(cfgKeyTimeLayouts)
}

// outputFormat resolves the stdout format: --format flag > config.yaml.
func outputFormat() string {
	if flagFormat != "" {
		return flagFormat
	}
	return configFormat
}

// maxRows resolves the stdout row cap: --max-rows flag > config.yaml.
func maxRows() int {
	if flagMaxRows >= 0 {
		return flagMaxRows
	}
	return configMaxRows
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
