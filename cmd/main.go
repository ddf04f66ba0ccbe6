package main

import (
	"fmt"
	"os"

	"Food-Tracker/internal/utils"
	"Food-Tracker/internal/utils/logger"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	log        *logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "food-tracker",
		Short:         "Food Tracker - pantry expiry tracking with an Italian voice assistant",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			utils.LoadConfigFrom(configPath)
			l, err := logger.New(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"))
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(digestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
