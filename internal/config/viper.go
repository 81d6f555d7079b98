// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by the application.
const EnvPrefix = "DIRF"

// Supported export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ExportConfig holds the tabular output settings.
type ExportConfig struct {
	Format       string `mapstructure:"format" yaml:"format"`
	SheetName    string `mapstructure:"sheet_name" yaml:"sheet_name"`
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	DateFormat   string `mapstructure:"date_format" yaml:"date_format"`
}

// PDFConfig selects the external text extraction tool.
type PDFConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
	Layout  bool   `mapstructure:"layout" yaml:"layout"`
}

// ValidationConfig toggles optional consistency checks.
type ValidationConfig struct {
	CheckTotals bool `mapstructure:"check_totals" yaml:"check_totals"`
}

// BatchConfig tunes directory processing.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Export     ExportConfig     `mapstructure:"export" yaml:"export"`
	PDF        PDFConfig        `mapstructure:"pdf" yaml:"pdf"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	Batch      BatchConfig      `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// An explicit configFile replaces the default search path and must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.dirf-parser")
		v.AddConfigPath(".dirf-parser")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.normalize()

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("export.format", FormatXLSX)
	v.SetDefault("export.sheet_name", "FontesPagadoras")
	v.SetDefault("export.csv_delimiter", ",")
	v.SetDefault("export.date_format", "2006-01-02")

	v.SetDefault("pdf.command", "pdftotext")
	v.SetDefault("pdf.layout", false)

	v.SetDefault("validation.check_totals", false)

	v.SetDefault("batch.workers", 4)
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Export.Format != FormatXLSX && config.Export.Format != FormatCSV {
		return fmt.Errorf("invalid export format: %s (must be 'xlsx' or 'csv')", config.Export.Format)
	}

	if len([]rune(config.Export.CSVDelimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.Export.CSVDelimiter)
	}

	// Excel limits sheet names to 31 characters.
	if name := config.Export.SheetName; name == "" || len([]rune(name)) > 31 {
		return fmt.Errorf("export.sheet_name must be 1 to 31 characters, got: %q", name)
	}

	if strings.TrimSpace(config.PDF.Command) == "" {
		return fmt.Errorf("pdf.command must not be empty")
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}

// Validate checks a configuration assembled outside InitializeConfig,
// for instance after command-line overrides.
func (c *Config) Validate() error {
	c.normalize()
	return validateConfig(c)
}

// YAML renders the effective configuration.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
