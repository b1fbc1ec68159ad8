package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestReadOrders(t *testing.T) {
	path := writeFile(t, "orders.csv", `OrderID,ProductID,CustomerID,OrderDate,Quantity,Price
1001,P001,C101,2024-01-05,2,15.50
1002,P002,C102,2024-01-05,1,25.00
`)

	orders, err := ReadOrders(path)
	if err != nil {
		t.Fatalf("ReadOrders failed: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}

	o := orders[0]
	if o.OrderID != 1001 {
		t.Errorf("Expected OrderID 1001, got %d", o.OrderID)
	}
	if o.ProductID != "P001" || o.CustomerID != "C101" {
		t.Errorf("Unexpected identifiers: %+v", o)
	}
	if !o.OrderDate.Equal(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected OrderDate: %v", o.OrderDate)
	}
	if o.Quantity != 2 {
		t.Errorf("Expected Quantity 2, got %d", o.Quantity)
	}
	if o.Price.String() != "15.5" {
		t.Errorf("Expected Price 15.5, got %s", o.Price)
	}
}

func TestReadOrdersColumnOrderIndependent(t *testing.T) {
	path := writeFile(t, "orders.csv", `Price,OrderDate,OrderID,Quantity,CustomerID,ProductID,Extra
15.50,2024-01-05,1001,2,C101,P001,ignored
`)

	orders, err := ReadOrders(path)
	if err != nil {
		t.Fatalf("ReadOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	if orders[0].OrderID != 1001 || orders[0].ProductID != "P001" {
		t.Errorf("Columns mapped incorrectly: %+v", orders[0])
	}
}

func TestReadOrdersMissingFile(t *testing.T) {
	_, err := ReadOrders(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput, got: %v", err)
	}
}

func TestReadOrdersMissingColumn(t *testing.T) {
	path := writeFile(t, "orders.csv", `OrderID,ProductID,CustomerID,OrderDate,Quantity
1001,P001,C101,2024-01-05,2
`)

	_, err := ReadOrders(path)
	if err == nil {
		t.Fatal("Expected error for missing Price column, got nil")
	}
}

func TestReadOrdersMalformedRows(t *testing.T) {
	header := "OrderID,ProductID,CustomerID,OrderDate,Quantity,Price\n"

	tests := []struct {
		name string
		row  string
	}{
		{"bad order id", "abc,P001,C101,2024-01-05,2,15.50"},
		{"bad date", "1001,P001,C101,Jan 5th,2,15.50"},
		{"bad quantity", "1001,P001,C101,2024-01-05,two,15.50"},
		{"zero quantity", "1001,P001,C101,2024-01-05,0,15.50"},
		{"negative price", "1001,P001,C101,2024-01-05,2,-1.00"},
		{"empty product id", "1001,,C101,2024-01-05,2,15.50"},
		{"empty customer id", "1001,P001,,2024-01-05,2,15.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "orders.csv", header+tt.row+"\n")
			_, err := ReadOrders(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("Expected RowError, got: %v", err)
			}
			if rowErr.Line != 2 {
				t.Errorf("Expected error on line 2, got line %d", rowErr.Line)
			}
		})
	}
}

func TestReadOrdersDateLayouts(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"iso date", "2024-01-05"},
		{"iso datetime", "2024-01-05 09:30:00"},
		{"rfc3339", "2024-01-05T09:30:00Z"},
		{"slash date", "2024/01/05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "orders.csv",
				"OrderID,ProductID,CustomerID,OrderDate,Quantity,Price\n"+
					"1001,P001,C101,"+tt.date+",2,15.50\n")

			orders, err := ReadOrders(path)
			if err != nil {
				t.Fatalf("ReadOrders failed: %v", err)
			}
			d := orders[0].OrderDate
			if d.Year() != 2024 || d.Month() != time.January || d.Day() != 5 {
				t.Errorf("Expected 2024-01-05, got %v", d)
			}
		})
	}
}

func TestReadProducts(t *testing.T) {
	path := writeFile(t, "products.csv", `ProductID,ProductName,Category,Cost
P001,Keyboard,Peripherals,10.00
P002,Mouse,Peripherals,18.00
`)

	products, err := ReadProducts(path)
	if err != nil {
		t.Fatalf("ReadProducts failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ProductName != "Keyboard" || products[0].Category != "Peripherals" {
		t.Errorf("Unexpected product: %+v", products[0])
	}
	if products[1].Cost.String() != "18" {
		t.Errorf("Expected Cost 18, got %s", products[1].Cost)
	}
}

func TestReadProductsMissingFile(t *testing.T) {
	_, err := ReadProducts(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput, got: %v", err)
	}
}

func TestReadProductsNegativeCost(t *testing.T) {
	path := writeFile(t, "products.csv", `ProductID,ProductName,Category,Cost
P001,Keyboard,Peripherals,-10.00
`)

	_, err := ReadProducts(path)
	if err == nil {
		t.Fatal("Expected error for negative cost, got nil")
	}
}

func TestReadOrdersEmptyFile(t *testing.T) {
	path := writeFile(t, "orders.csv", "OrderID,ProductID,CustomerID,OrderDate,Quantity,Price\n")

	orders, err := ReadOrders(path)
	if err != nil {
		t.Fatalf("ReadOrders failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected 0 orders, got %d", len(orders))
	}
}
