package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"salesmart/internal/db"
)

var statusTables = []string{"fact_sales", "dim_product", "dim_date", "dim_customer"}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show load metadata and current table row counts",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	metadata, err := db.GetAllMetadata(ctx, pool)
	if err != nil || len(metadata) == 0 {
		return fmt.Errorf("database has not been loaded; run 'salesmart load' first")
	}

	cmd.Println("Last load:")
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmd.Printf("  %-14s %s\n", key, metadata[key])
	}

	cmd.Println()
	cmd.Println("Row counts:")
	for _, table := range statusTables {
		var count int64
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		cmd.Printf("  %-14s %d\n", table, count)
	}

	return nil
}
