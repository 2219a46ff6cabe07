package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/charle01ch/gerador-5-app/internal/app"
	"github.com/charle01ch/gerador-5-app/internal/config"
	"github.com/charle01ch/gerador-5-app/internal/db"
	"github.com/charle01ch/gerador-5-app/internal/generator"
	"github.com/charle01ch/gerador-5-app/internal/history"
	"github.com/charle01ch/gerador-5-app/internal/llm"
	"github.com/charle01ch/gerador-5-app/internal/server"
	"github.com/charle01ch/gerador-5-app/internal/state"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the appgen studio server",
	Long:  `Starts the local studio: the prompt/editor web UI, the REST API, and the sandboxed live preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort > 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		// A missing credential is fatal here, not on the first generation.
		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}

		dbPath := filepath.Join(cfg.DataDir, "appgen.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		stateStore := state.NewStore(database)
		writer := state.NewDebouncer(stateStore, state.DebounceWindow)
		defer writer.Close()

		hist := history.NewStore(database)

		gen := generator.New(provider, cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)
		ctrl := app.New(gen, writer, hist)
		ctrl.Restore(stateStore)

		srv := server.New(server.Config{Port: cfg.Port}, ctrl, hist)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down studio...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "appgen studio v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
