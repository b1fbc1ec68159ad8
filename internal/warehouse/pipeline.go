package warehouse

import (
	"context"

	"salesmart/internal/logging"
	"salesmart/internal/source"
)

// Run executes one full-refresh load: recreate the schema, transform the
// sources into star form, and load everything in a single transaction.
// Orphaned product references are logged but never block the load; the
// data-quality report counts them afterwards.
func Run(ctx context.Context, db DB, orders []source.OrderRecord, products []source.ProductRecord) (Counts, error) {
	if err := InitSchema(ctx, db); err != nil {
		return Counts{}, err
	}
	logging.Info().Msg("Schema created")

	star := Transform(orders, products)

	if missing := star.MissingProductRefs(); len(missing) > 0 {
		logging.Warn().
			Strs("product_ids", missing).
			Msg("Orders reference products missing from the product source")
	}

	counts, err := Load(ctx, db, star)
	if err != nil {
		return Counts{}, err
	}

	logging.Info().
		Int64("dim_product", counts.Products).
		Int64("dim_customer", counts.Customers).
		Int64("dim_date", counts.Dates).
		Int64("fact_sales", counts.Facts).
		Msg("Load complete")

	return counts, nil
}
