// Package configcmd exposes the effective configuration
package configcmd

import (
	"fmt"

	"fjacquet/dirf-parser/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd groups configuration subcommands
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

// ShowCmd prints the configuration after defaults, config file, environment
// and flags have been applied.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := root.GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	Cmd.AddCommand(ShowCmd)
}
