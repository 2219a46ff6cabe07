package cmd

import (
	"github.com/spf13/cobra"

	"github.com/charle01ch/gerador-5-app/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize appgen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose a provider and model and generates a .appgen.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
