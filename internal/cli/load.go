package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"salesmart/internal/db"
	"salesmart/internal/logging"
	"salesmart/internal/source"
	"salesmart/internal/warehouse"
)

var (
	loadOrdersFile   string
	loadProductsFile string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run the ETL pipeline: recreate the schema and load both sources",
	Long: `Read the orders and products CSV sources, transform them into the
star schema, and load the result into PostgreSQL. Every load is a full
refresh: the four tables are dropped and recreated, then dimensions and
facts are written in a single transaction.

Example:
  salesmart load --orders data/orders.csv --products data/products.csv`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadOrdersFile, "orders", "",
		"path to the orders CSV file")
	loadCmd.Flags().StringVar(&loadProductsFile, "products", "",
		"path to the products CSV file")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadOrdersFile != "" {
		cfg.Load.OrdersFile = loadOrdersFile
	}
	if loadProductsFile != "" {
		cfg.Load.ProductsFile = loadProductsFile
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	// Read both sources before touching the store: a missing source is a
	// clean abort with no schema mutation.
	orders, err := source.ReadOrders(cfg.Load.OrdersFile)
	if err != nil {
		if errors.Is(err, source.ErrMissingInput) {
			return fmt.Errorf("order source unavailable: %w", err)
		}
		return fmt.Errorf("failed to read orders: %w", err)
	}

	products, err := source.ReadProducts(cfg.Load.ProductsFile)
	if err != nil {
		if errors.Is(err, source.ErrMissingInput) {
			return fmt.Errorf("product source unavailable: %w", err)
		}
		return fmt.Errorf("failed to read products: %w", err)
	}

	logging.Info().
		Int("orders", len(orders)).
		Int("products", len(products)).
		Msg("Loaded source files")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	counts, err := warehouse.Run(ctx, pool, orders, products)
	if err != nil {
		return err
	}

	if err := db.SaveLoadInfo(ctx, pool, db.LoadInfo{
		OrdersFile:   cfg.Load.OrdersFile,
		ProductsFile: cfg.Load.ProductsFile,
		FactRows:     counts.Facts,
	}); err != nil {
		return err
	}

	logging.Info().
		Int64("fact_rows", counts.Facts).
		Msg("ETL completed successfully")

	return nil
}
