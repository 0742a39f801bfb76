// Package config provides configuration management for a sales analysis run.
//
// Values are resolved in increasing order of precedence: built-in defaults,
// an optional YAML or JSON file, SALESINSIGHT_* environment variables, and
// finally command-line flags applied by the caller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"github.com/paveg/salesinsight/internal/validation"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by LoadFromEnv.
const EnvPrefix = "SALESINSIGHT"

// Default configuration values
const (
	DefaultInputPath        = "data/retail_sales_data.csv"
	DefaultOutputDir        = "outputs"
	DefaultVisualizationDir = "visualizations"
	DefaultTopN             = 10
	DefaultDelimiter        = ","
	DefaultLogMode          = "development"
)

// Export formats accepted in Config.Exports.
const (
	ExportXLSX    = "xlsx"
	ExportParquet = "parquet"
	ExportJSON    = "json"
)

// ExportFormats lists the supported export formats in the order they are written.
var ExportFormats = []string{ExportXLSX, ExportParquet, ExportJSON}

// DefaultDateLayouts are tried in order when parsing the Date column.
var DefaultDateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	time.DateTime,
	time.RFC3339,
}

// Config represents the settings of one analysis run
type Config struct {
	InputPath        string   `json:"input_path" yaml:"input_path" envconfig:"INPUT_PATH"`
	OutputDir        string   `json:"output_dir" yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	VisualizationDir string   `json:"visualization_dir" yaml:"visualization_dir" envconfig:"VISUALIZATION_DIR"`
	TopN             int      `json:"top_n" yaml:"top_n" envconfig:"TOP_N"`                      // Products listed in rankings
	Delimiter        string   `json:"delimiter" yaml:"delimiter" envconfig:"DELIMITER"`          // Single-character field delimiter
	DateLayouts      []string `json:"date_layouts" yaml:"date_layouts" envconfig:"DATE_LAYOUTS"` // Go time layouts, tried in order
	Exports          []string `json:"exports" yaml:"exports" envconfig:"EXPORTS"`                // Any of xlsx, parquet, json

	LogMode string `json:"log_mode" yaml:"log_mode" envconfig:"LOG_MODE"` // development or production
	Metrics bool   `json:"metrics" yaml:"metrics" envconfig:"METRICS"`    // Log per-stage timings
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		InputPath:        DefaultInputPath,
		OutputDir:        DefaultOutputDir,
		VisualizationDir: DefaultVisualizationDir,
		TopN:             DefaultTopN,
		Delimiter:        DefaultDelimiter,
		DateLayouts:      append([]string(nil), DefaultDateLayouts...),
		LogMode:          DefaultLogMode,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	const op = "Config"

	err := validation.NewCompoundValidator(
		validation.NewNotEmptyValidator(c.InputPath, op, "input_path"),
		validation.NewNotEmptyValidator(c.OutputDir, op, "output_dir"),
		validation.NewNotEmptyValidator(c.VisualizationDir, op, "visualization_dir"),
		validation.NewMinValidator(c.TopN, 1, op, "top_n"),
		validation.NewMinValidator(len(c.DateLayouts), 1, op, "date_layouts"),
		validation.NewOneOfValidator(c.Exports, ExportFormats, op, "export"),
		validation.NewOneOfValidator([]string{c.LogMode}, []string{"development", "production"}, op, "log_mode"),
	).Validate()
	if err != nil {
		return err
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

// DelimiterRune returns the delimiter as a rune, defaulting to a comma.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// ExportEnabled reports whether format is listed in Exports.
func (c Config) ExportEnabled(format string) bool {
	for _, e := range c.Exports {
		if e == format {
			return true
		}
	}
	return false
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.InputPath == "" {
		c.InputPath = defaults.InputPath
	}
	if c.OutputDir == "" {
		c.OutputDir = defaults.OutputDir
	}
	if c.VisualizationDir == "" {
		c.VisualizationDir = defaults.VisualizationDir
	}
	if c.TopN == 0 {
		c.TopN = defaults.TopN
	}
	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if len(c.DateLayouts) == 0 {
		c.DateLayouts = defaults.DateLayouts
	}
	if c.LogMode == "" {
		c.LogMode = defaults.LogMode
	}

	return c
}

// LoadFromFile loads configuration from a YAML or JSON file on top of the defaults
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := NewConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// ApplyEnv overlays SALESINSIGHT_* environment variables onto config. Unset
// variables leave the corresponding field untouched.
func ApplyEnv(config Config) (Config, error) {
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return Config{}, fmt.Errorf("loading configuration from environment: %w", err)
	}
	return config.WithDefaults(), nil
}

// Load resolves defaults, the optional file at path and the environment.
func Load(path string) (Config, error) {
	config := NewConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return Config{}, err
		}
		config = loaded
	}
	return ApplyEnv(config)
}
