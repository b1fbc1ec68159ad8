package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"salesmart/internal/db"
	"salesmart/internal/reports"
)

var reportQuery string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the reporting queries against a loaded database",
	Long: `Run the fixed set of aggregate reporting queries over the populated
star schema and print each result as a table. The database must have been
loaded with 'salesmart load' first.

Example:
  salesmart report
  salesmart report --query product_performance`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportQuery, "query", "",
		"run a single query by name (see 'salesmart queries')")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to report against a database that was never loaded.
	if _, err := db.GetMetadataValue(ctx, pool, "loaded_at"); err != nil {
		return fmt.Errorf("database has not been loaded; run 'salesmart load' first")
	}

	out := cmd.OutOrStdout()

	if reportQuery != "" {
		q, err := reports.Get(reportQuery)
		if err != nil {
			return err
		}
		res, err := reports.Run(ctx, pool, q)
		if err != nil {
			return err
		}
		reports.Render(out, res)
		return nil
	}

	results, err := reports.RunAll(ctx, pool)
	if err != nil {
		return err
	}
	for _, res := range results {
		reports.Render(out, res)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "All queries completed.")
	return nil
}
