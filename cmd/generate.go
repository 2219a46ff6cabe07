package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/charle01ch/gerador-5-app/internal/compose"
	"github.com/charle01ch/gerador-5-app/internal/config"
	"github.com/charle01ch/gerador-5-app/internal/generator"
	"github.com/charle01ch/gerador-5-app/internal/llm"
	"github.com/charle01ch/gerador-5-app/internal/progress"
)

var (
	generateOutput string
	generateCSS    string
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate an HTML page from a prompt and write it to a file",
	Long:  `Sends a single generation request and writes the resulting HTML document to a file, without starting the studio.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(args[0])
		if prompt == "" {
			return fmt.Errorf("prompt must not be empty")
		}

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

		reporter := progress.NewReporter()
		reporter.Start(fmt.Sprintf("Generating with %s", cfg.Model))
		html, err := gen.Generate(context.Background(), prompt)
		reporter.Finish()
		if err != nil {
			return fmt.Errorf("generating page: %w", err)
		}

		if generateCSS != "" {
			css, err := os.ReadFile(generateCSS)
			if err != nil {
				return fmt.Errorf("reading css file: %w", err)
			}
			html = compose.Document(html, string(css))
		}

		if err := os.WriteFile(generateOutput, []byte(html), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", generateOutput, err)
		}

		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", generateOutput, len(html))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "generated-app.html", "output file path")
	generateCmd.Flags().StringVar(&generateCSS, "css", "", "CSS file to inject into the document head")
	rootCmd.AddCommand(generateCmd)
}
