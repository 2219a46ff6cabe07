package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/charle01ch/gerador-5-app/internal/config"
	"github.com/charle01ch/gerador-5-app/internal/db"
	"github.com/charle01ch/gerador-5-app/internal/generator"
	"github.com/charle01ch/gerador-5-app/internal/history"
	"github.com/charle01ch/gerador-5-app/internal/llm"
	mcpserver "github.com/charle01ch/gerador-5-app/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the generate_page tool for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}

		gen := generator.New(provider, cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)

		// History is best effort: the tool still works without a database.
		var hist *history.Store
		if database, dbErr := db.Open(filepath.Join(cfg.DataDir, "appgen.db")); dbErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: generation history unavailable: %v\n", dbErr)
		} else {
			defer database.Close()
			hist = history.NewStore(database)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "appgen MCP server started on stdio (provider=%s, model=%s)\n", cfg.Provider, cfg.Model)

		srv := mcpserver.NewServer(gen, hist)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
