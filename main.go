package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

var (
	configPath string
	socketPath string
)

var rootCmd = &cobra.Command{
	Use:   "textutils",
	Short: "A catalog of text utilities",
	Long: `textutils runs text utilities: case conversion, sorting, diffing,
encoding, formatting, conversion and generators. Utilities can be applied
one at a time, chained into pipelines, served over a Unix socket or used
from an interactive REPL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: textutils.yaml in the config directories)")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Unix socket path (overrides the configuration)")
}

// loadConfig reads the configuration and applies the persistent flags
func loadConfig() (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if socketPath != "" {
		cfg.Socket = socketPath
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if e, ok := operr.As(err); ok {
			fmt.Fprintf(os.Stderr, "Error (%s): %s\n", e.Kind, e.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}
