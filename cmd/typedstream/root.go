package main

import (
	"github.com/spf13/cobra"

	ts "github.com/dgelessus-go/typedstream"
	_ "github.com/dgelessus-go/typedstream/classes"
)

var (
	configPath string
	strictFlag bool
	colorFlag  bool
	indentFlag int
)

var rootCmd = &cobra.Command{
	Use:   "typedstream",
	Short: "Read and decode NeXTSTEP/Apple typedstream archives",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "path to an optional YAML defaults file")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "reject trailing bytes after a clean top-level decode")
	rootCmd.PersistentFlags().BoolVar(&colorFlag, "color", true, "force/disable ANSI color in decode output")
	rootCmd.PersistentFlags().IntVar(&indentFlag, "indent", 2, "pretty-printer indent width")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadedConfig applies the optional config file as defaults for any flag the
// user did not explicitly set.
func loadedConfig(cmd *cobra.Command) (*ts.Config, error) {
	cfg, err := ts.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("strict") {
		strictFlag = cfg.Strict
	}
	if !cmd.Flags().Changed("color") {
		colorFlag = cfg.Color
	}
	if !cmd.Flags().Changed("indent") {
		indentFlag = cfg.Indent
	}
	return cfg, nil
}
