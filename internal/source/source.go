// Package source reads the flat tabular inputs for the warehouse load.
// Each source is a CSV file with a fixed, named field set. Rows are parsed
// into typed records at this boundary; anything malformed is rejected here
// so the transform stages can assume valid input.
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMissingInput indicates a required source file does not exist.
// Callers treat this as a clean pipeline abort rather than a crash.
var ErrMissingInput = errors.New("input source not found")

// RowError describes a malformed row in a source file.
type RowError struct {
	File string
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// OrderRecord is one order line from the orders source.
type OrderRecord struct {
	OrderID    int
	ProductID  string
	CustomerID string
	OrderDate  time.Time
	Quantity   int
	Price      decimal.Decimal
}

// ProductRecord is one product from the products source.
type ProductRecord struct {
	ProductID   string
	ProductName string
	Category    string
	Cost        decimal.Decimal
}
