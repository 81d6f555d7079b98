package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fjacquet/dirf-parser/cmd/batch"
	configcmd "fjacquet/dirf-parser/cmd/config"
	"fjacquet/dirf-parser/cmd/convert"
	"fjacquet/dirf-parser/cmd/root"
	"fjacquet/dirf-parser/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load .env silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Set the global logrus level before any logger is created
	configureLogLevelDirectly()

	// 3. Initialize root command and add subcommands
	root.Init()
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

// configureLogLevelDirectly sets the global log level from DIRF_LOG_LEVEL
// and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.Cmd.ExecuteContext(ctx)
	if closeErr := root.Shutdown(); closeErr != nil {
		logrus.WithError(closeErr).Warn("Failed to release resources")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
