// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/dirf-parser/internal/config"
	"fjacquet/dirf-parser/internal/container"
	"fjacquet/dirf-parser/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "dirf-parser",
		Short: "A CLI tool to convert DIRF withholding statements (Fontes Pagadoras) to XLSX or CSV.",
		Long: `dirf-parser extracts the per-code income and withholding breakdown of
Brazilian DIRF "Fontes Pagadoras" PDF statements and writes it as a flat table,
one row per code line joined with the payer that precedes it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Configuration flags
	ConfigFile string
	LogLevel   string
	LogFormat  string

	initOnce     sync.Once
	mu           sync.RWMutex
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
		flags.BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")

		flags.StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.dirf-parser, .dirf-parser and .)")
		flags.StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.StringVar(&LogFormat, "log-format", "", "Log format (text, json)")
	})
}

// Setup loads the configuration, applies flag overrides and builds the
// container used by every subcommand. A container injected with SetContainer
// is kept as is.
func Setup() error {
	if GetContainer() != nil {
		return nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

// LoadConfig reads the layered configuration and applies the command-line overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return nil, err
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if LogFormat != "" {
		cfg.Log.Format = LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Shutdown closes the application container, if any, and forgets it.
func Shutdown() error {
	mu.Lock()
	c := appContainer
	appContainer = nil
	mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

// SetContainer replaces the application container. Passing nil forces the
// next command to rebuild it.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
}

// GetContainer returns the application container, or nil before Setup ran.
func GetContainer() *container.Container {
	mu.RLock()
	defer mu.RUnlock()
	return appContainer
}

// GetConfig returns the active configuration, or nil before Setup ran.
func GetConfig() *config.Config {
	if c := GetContainer(); c != nil {
		return c.GetConfig()
	}
	return nil
}

// GetLogger returns the container's logger, or a default logger before Setup ran.
func GetLogger() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}
