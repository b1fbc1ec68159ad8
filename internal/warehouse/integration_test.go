package warehouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/internal/reports"
	"salesmart/internal/source"
	"salesmart/internal/testutil"
	"salesmart/internal/warehouse"
)

func fixtureOrders(t *testing.T) []source.OrderRecord {
	t.Helper()
	d := func(day int) time.Time {
		return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
	}
	m := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal literal %q: %v", s, err)
		}
		return v
	}
	return []source.OrderRecord{
		{OrderID: 1001, ProductID: "P001", CustomerID: "C101", OrderDate: d(5), Quantity: 2, Price: m("15.50")},
		{OrderID: 1002, ProductID: "P002", CustomerID: "C102", OrderDate: d(5), Quantity: 1, Price: m("25.00")},
		// P999 is absent from the product source on purpose.
		{OrderID: 1003, ProductID: "P999", CustomerID: "C101", OrderDate: d(6), Quantity: 1, Price: m("9.99")},
	}
}

func fixtureProducts(t *testing.T) []source.ProductRecord {
	t.Helper()
	m := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal literal %q: %v", s, err)
		}
		return v
	}
	return []source.ProductRecord{
		{ProductID: "P001", ProductName: "Keyboard", Category: "Peripherals", Cost: m("10.00")},
		{ProductID: "P002", ProductName: "Mouse", Category: "Peripherals", Cost: m("18.00")},
	}
}

func TestPipelineIntegration(t *testing.T) {
	baseConn := testutil.SkipIfNoPostgres(t)
	testConn, dbName := testutil.CreateTestDB(t, baseConn)
	t.Cleanup(func() { testutil.DropTestDB(t, baseConn, dbName) })

	pool := testutil.ConnectTestDB(t, testConn)
	defer pool.Close()

	ctx := context.Background()
	orders := fixtureOrders(t)
	products := fixtureProducts(t)

	counts, err := warehouse.Run(ctx, pool, orders, products)
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	if counts.Facts != 3 {
		t.Errorf("Expected 3 fact rows, got %d", counts.Facts)
	}
	if counts.Products != 2 {
		t.Errorf("Expected 2 product rows, got %d", counts.Products)
	}
	if counts.Customers != 2 {
		t.Errorf("Expected 2 customer rows, got %d", counts.Customers)
	}
	if counts.Dates != 2 {
		t.Errorf("Expected 2 date rows, got %d", counts.Dates)
	}

	// Stored revenue is the transform-time value, exactly.
	var revenue string
	err = pool.QueryRow(ctx,
		"SELECT revenue::text FROM fact_sales WHERE order_id = 1001").Scan(&revenue)
	if err != nil {
		t.Fatalf("Failed to read revenue: %v", err)
	}
	if revenue != "31.00" {
		t.Errorf("Expected revenue '31.00', got '%s'", revenue)
	}

	// The orphaned product reference loaded anyway.
	var orphanCount int64
	err = pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM fact_sales WHERE product_id = 'P999'").Scan(&orphanCount)
	if err != nil {
		t.Fatalf("Failed to count orphan rows: %v", err)
	}
	if orphanCount != 1 {
		t.Errorf("Expected 1 orphaned fact row, got %d", orphanCount)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	baseConn := testutil.SkipIfNoPostgres(t)
	testConn, dbName := testutil.CreateTestDB(t, baseConn)
	t.Cleanup(func() { testutil.DropTestDB(t, baseConn, dbName) })

	pool := testutil.ConnectTestDB(t, testConn)
	defer pool.Close()

	ctx := context.Background()
	orders := fixtureOrders(t)
	products := fixtureProducts(t)

	first, err := warehouse.Run(ctx, pool, orders, products)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := warehouse.Run(ctx, pool, orders, products)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if first != second {
		t.Errorf("Re-run is not idempotent: first %+v, second %+v", first, second)
	}

	var factCount int64
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM fact_sales").Scan(&factCount); err != nil {
		t.Fatalf("Failed to count fact rows: %v", err)
	}
	if factCount != int64(len(orders)) {
		t.Errorf("Expected %d fact rows after re-run, got %d", len(orders), factCount)
	}
}

func TestReportQueriesIntegration(t *testing.T) {
	baseConn := testutil.SkipIfNoPostgres(t)
	testConn, dbName := testutil.CreateTestDB(t, baseConn)
	t.Cleanup(func() { testutil.DropTestDB(t, baseConn, dbName) })

	pool := testutil.ConnectTestDB(t, testConn)
	defer pool.Close()

	ctx := context.Background()
	if _, err := warehouse.Run(ctx, pool, fixtureOrders(t), fixtureProducts(t)); err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	results, err := reports.RunAll(ctx, pool)
	if err != nil {
		t.Fatalf("Report queries failed: %v", err)
	}
	if len(results) != len(reports.Queries()) {
		t.Fatalf("Expected %d results, got %d", len(reports.Queries()), len(results))
	}

	// The quality check must count the single orphaned product reference.
	quality := results[len(results)-1]
	found := false
	for _, row := range quality.Rows {
		if len(row) == 2 && row[0] == "Missing Product References" {
			found = true
			if row[1] != "1" {
				t.Errorf("Expected 1 missing product reference, got %s", row[1])
			}
		}
	}
	if !found {
		t.Error("Quality check did not report missing product references")
	}

	// Date and customer references are guaranteed by construction.
	for _, row := range quality.Rows {
		if len(row) == 2 && row[0] != "Missing Product References" && row[1] != "0" {
			t.Errorf("Expected 0 for %s, got %s", row[0], row[1])
		}
	}
}
