package warehouse

import (
	"context"
	"fmt"
)

// Schema SQL for the sales star schema. Column names are snake_case
// throughout; the report queries use the same names.
//
// fact_sales deliberately has no foreign key on product_id: the product
// source may legitimately omit a product that appears in orders, and the
// data-quality report surfaces those rows instead of rejecting the load.
const createSchemaSQL = `
CREATE TABLE dim_product (
    product_id   TEXT PRIMARY KEY,
    product_name TEXT NOT NULL,
    category     TEXT NOT NULL,
    cost         NUMERIC(12,2) NOT NULL
);

CREATE TABLE dim_date (
    date_key   TEXT PRIMARY KEY,
    full_date  DATE NOT NULL,
    year       INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    day        INTEGER NOT NULL,
    month_name TEXT NOT NULL,
    quarter    INTEGER NOT NULL
);

CREATE TABLE dim_customer (
    customer_id TEXT PRIMARY KEY
);

CREATE TABLE fact_sales (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    order_id    INTEGER NOT NULL,
    product_id  TEXT NOT NULL,
    customer_id TEXT NOT NULL REFERENCES dim_customer(customer_id),
    date_key    TEXT NOT NULL REFERENCES dim_date(date_key),
    quantity    INTEGER NOT NULL,
    price       NUMERIC(12,2) NOT NULL,
    revenue     NUMERIC(14,2) NOT NULL
);

CREATE INDEX idx_fact_sales_product ON fact_sales(product_id);
CREATE INDEX idx_fact_sales_date ON fact_sales(date_key);
CREATE INDEX idx_fact_sales_customer ON fact_sales(customer_id);
`

// Drop order matters: the fact table references the dimensions.
const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales;
DROP TABLE IF EXISTS dim_product;
DROP TABLE IF EXISTS dim_date;
DROP TABLE IF EXISTS dim_customer;
`

// SchemaError indicates DDL against the store failed. It is fatal for the run.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema setup failed: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// InitSchema drops the four tables if present and recreates them. It is
// safe to call repeatedly; every run starts from an empty schema.
func InitSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, dropSchemaSQL); err != nil {
		return &SchemaError{Err: err}
	}
	if _, err := db.Exec(ctx, createSchemaSQL); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}

// DropSchema drops the four tables.
func DropSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, dropSchemaSQL); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}
