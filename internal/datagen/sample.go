package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/internal/logging"
)

// SampleConfig controls sample source generation.
type SampleConfig struct {
	// Products is the number of products to generate.
	Products int

	// Orders is the number of order lines to generate.
	Orders int

	// Seed makes generation reproducible when non-zero.
	Seed uint64

	// OutputDir is the directory the CSV files are written to.
	OutputDir string
}

type sampleProduct struct {
	id    string
	price decimal.Decimal
}

// WriteSampleData generates orders.csv and products.csv fixtures and
// returns their paths. Order dates span the 90 days before generation,
// and every order references a generated product so the data-quality
// report starts clean.
func WriteSampleData(cfg SampleConfig) (ordersPath, productsPath string, err error) {
	faker := NewFaker()
	if cfg.Seed != 0 {
		faker = NewFakerWithSeed(cfg.Seed)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	productsPath = filepath.Join(cfg.OutputDir, "products.csv")
	products, err := writeProducts(faker, productsPath, cfg.Products)
	if err != nil {
		return "", "", err
	}

	ordersPath = filepath.Join(cfg.OutputDir, "orders.csv")
	if err := writeOrders(faker, ordersPath, cfg.Orders, products); err != nil {
		return "", "", err
	}

	logging.Info().
		Int("products", cfg.Products).
		Int("orders", cfg.Orders).
		Str("dir", cfg.OutputDir).
		Msg("Sample data written")

	return ordersPath, productsPath, nil
}

func writeProducts(faker *Faker, path string, count int) ([]sampleProduct, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ProductID", "ProductName", "Category", "Cost"}); err != nil {
		return nil, err
	}

	products := make([]sampleProduct, 0, count)
	for i := 1; i <= count; i++ {
		cost := decimal.NewFromFloat(faker.Price(5, 200)).Round(2)
		markup := decimal.NewFromFloat(faker.Float(1.2, 1.8))
		price := cost.Mul(markup).Round(2)

		p := sampleProduct{
			id:    fmt.Sprintf("P%03d", i),
			price: price,
		}
		products = append(products, p)

		row := []string{p.id, faker.ProductName(), faker.ProductCategory(), cost.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return products, w.Error()
}

func writeOrders(faker *Faker, path string, count int, products []sampleProduct) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"OrderID", "ProductID", "CustomerID", "OrderDate", "Quantity", "Price"}); err != nil {
		return err
	}

	// A customer places a handful of orders on average.
	customers := max(1, count/4)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -90)

	for i := 0; i < count; i++ {
		p := products[faker.Int(0, len(products)-1)]
		row := []string{
			strconv.Itoa(1001 + i),
			p.id,
			fmt.Sprintf("C%03d", faker.Int(1, customers)),
			faker.DateRange(start, end).Format("2006-01-02"),
			strconv.Itoa(faker.Int(1, 5)),
			p.price.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
