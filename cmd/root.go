package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "appgen",
	Short: "AI-powered web app generator with a live-editing studio",
	Long: `AppGen turns a natural-language description into a complete,
self-contained HTML page. It serves a local studio for prompting,
hand-editing the result, layering custom CSS, and exporting the
composed document. It also integrates with AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".appgen.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
