package cli

import (
	"github.com/spf13/cobra"

	"salesmart/internal/datagen"
	"salesmart/internal/logging"
)

var (
	sampleProducts  int
	sampleOrders    int
	sampleSeed      uint64
	sampleOutputDir string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate sample orders and products CSV files",
	Long: `Generate plausible orders.csv and products.csv fixtures for trying
out the pipeline. A non-zero seed makes generation reproducible.

Example:
  salesmart sample --products 25 --orders 500 --out data`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleProducts, "products", 0,
		"number of products to generate")
	sampleCmd.Flags().IntVar(&sampleOrders, "orders", 0,
		"number of order lines to generate")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed (0 = non-deterministic)")
	sampleCmd.Flags().StringVar(&sampleOutputDir, "out", "",
		"output directory for the CSV files")
}

func runSample(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if sampleProducts > 0 {
		cfg.Sample.Products = sampleProducts
	}
	if sampleOrders > 0 {
		cfg.Sample.Orders = sampleOrders
	}
	if sampleSeed != 0 {
		cfg.Sample.Seed = sampleSeed
	}
	if sampleOutputDir != "" {
		cfg.Sample.OutputDir = sampleOutputDir
	}

	if err := cfg.ValidateSample(); err != nil {
		return err
	}

	ordersPath, productsPath, err := datagen.WriteSampleData(datagen.SampleConfig{
		Products:  cfg.Sample.Products,
		Orders:    cfg.Sample.Orders,
		Seed:      cfg.Sample.Seed,
		OutputDir: cfg.Sample.OutputDir,
	})
	if err != nil {
		return err
	}

	logging.Info().
		Str("orders", ordersPath).
		Str("products", productsPath).
		Msg("Sample sources ready; run 'salesmart load' next")

	return nil
}
