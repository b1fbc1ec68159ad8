// Package cli implements the command-line interface for salesmart.
package cli

import (
	"github.com/spf13/cobra"

	"salesmart/internal/config"
	"salesmart/internal/logging"
	"salesmart/internal/reports"
	"salesmart/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesmart",
		Short: "Star-schema ETL and reporting for sales data",
		Long: `salesmart reads flat order and product CSV files, reshapes them into
a star schema (one fact table, three dimension tables), loads the result
into PostgreSQL as a full refresh, and runs a fixed set of aggregate
reporting queries over the populated schema.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesmart.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(queriesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List available report queries",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available report queries:")
		cmd.Println()
		for _, q := range reports.Queries() {
			cmd.Printf("  %-26s - %s\n", q.Name, q.Description)
		}
		cmd.Println()
		cmd.Println("Use 'salesmart report --query <name>' to run a single query.")
	},
}
