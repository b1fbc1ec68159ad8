package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Load writes the star schema to the store in a single transaction.
// Dimension tables are written before the fact table because fact_sales
// references dim_customer and dim_date. On any failure the transaction
// rolls back and the store keeps its pre-load state.
func Load(ctx context.Context, db DB, star *Star) (Counts, error) {
	var counts Counts

	tx, err := db.Begin(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	counts.Products, err = copyProducts(ctx, tx, star.Products)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to load dim_product: %w", err)
	}

	counts.Customers, err = copyCustomers(ctx, tx, star.Customers)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to load dim_customer: %w", err)
	}

	counts.Dates, err = copyDates(ctx, tx, star.Dates)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to load dim_date: %w", err)
	}

	counts.Facts, err = copyFacts(ctx, tx, star.Facts)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to load fact_sales: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Counts{}, fmt.Errorf("failed to commit load: %w", err)
	}

	return counts, nil
}

func copyProducts(ctx context.Context, tx pgx.Tx, rows []ProductRow) (int64, error) {
	return tx.CopyFrom(ctx,
		pgx.Identifier{"dim_product"},
		[]string{"product_id", "product_name", "category", "cost"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			p := rows[i]
			return []any{p.ProductID, p.ProductName, p.Category, p.Cost.String()}, nil
		}))
}

func copyCustomers(ctx context.Context, tx pgx.Tx, rows []CustomerRow) (int64, error) {
	return tx.CopyFrom(ctx,
		pgx.Identifier{"dim_customer"},
		[]string{"customer_id"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{rows[i].CustomerID}, nil
		}))
}

func copyDates(ctx context.Context, tx pgx.Tx, rows []DateRow) (int64, error) {
	return tx.CopyFrom(ctx,
		pgx.Identifier{"dim_date"},
		[]string{"date_key", "full_date", "year", "month", "day", "month_name", "quarter"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			d := rows[i]
			return []any{d.DateKey, d.FullDate, d.Year, d.Month, d.Day, d.MonthName, d.Quarter}, nil
		}))
}

func copyFacts(ctx context.Context, tx pgx.Tx, rows []FactRow) (int64, error) {
	return tx.CopyFrom(ctx,
		pgx.Identifier{"fact_sales"},
		[]string{"order_id", "product_id", "customer_id", "date_key", "quantity", "price", "revenue"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			f := rows[i]
			return []any{
				f.OrderID, f.ProductID, f.CustomerID, f.DateKey,
				f.Quantity, f.Price.String(), f.Revenue.String(),
			}, nil
		}))
}
