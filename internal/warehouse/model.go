// Package warehouse implements the star-schema transform and load stage.
// It reshapes the flat order and product sources into one fact table and
// three dimension tables and persists them in PostgreSQL.
package warehouse

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DB is an interface that both *pgxpool.Pool and *pgx.Conn satisfy.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRow is one row of dim_product.
type ProductRow struct {
	ProductID   string
	ProductName string
	Category    string
	Cost        decimal.Decimal
}

// DateRow is one row of dim_date. DateKey is the canonical YYYY-MM-DD form.
type DateRow struct {
	DateKey   string
	FullDate  time.Time
	Year      int
	Month     int
	Day       int
	MonthName string
	Quarter   int
}

// CustomerRow is one row of dim_customer.
type CustomerRow struct {
	CustomerID string
}

// FactRow is one row of fact_sales. Revenue is computed once at transform
// time and never recomputed downstream.
type FactRow struct {
	OrderID    int
	ProductID  string
	CustomerID string
	DateKey    string
	Quantity   int
	Price      decimal.Decimal
	Revenue    decimal.Decimal
}

// Star is the fully transformed star schema for one run, ready to load.
type Star struct {
	Products  []ProductRow
	Dates     []DateRow
	Customers []CustomerRow
	Facts     []FactRow
}

// Counts reports rows written per table.
type Counts struct {
	Products  int64
	Dates     int64
	Customers int64
	Facts     int64
}
