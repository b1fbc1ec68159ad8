package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted order date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

var orderColumns = []string{"OrderID", "ProductID", "CustomerID", "OrderDate", "Quantity", "Price"}
var productColumns = []string{"ProductID", "ProductName", "Category", "Cost"}

// ReadOrders reads the orders source file.
func ReadOrders(path string) ([]OrderRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	idx, err := readHeader(r, path, orderColumns)
	if err != nil {
		return nil, err
	}

	var orders []OrderRecord
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{File: path, Line: line, Err: err}
		}

		rec, err := parseOrder(row, idx)
		if err != nil {
			return nil, &RowError{File: path, Line: line, Err: err}
		}
		orders = append(orders, rec)
	}

	return orders, nil
}

// ReadProducts reads the products source file.
func ReadProducts(path string) ([]ProductRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	idx, err := readHeader(r, path, productColumns)
	if err != nil {
		return nil, err
	}

	var products []ProductRecord
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{File: path, Line: line, Err: err}
		}

		rec, err := parseProduct(row, idx)
		if err != nil {
			return nil, &RowError{File: path, Line: line, Err: err}
		}
		products = append(products, rec)
	}

	return products, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingInput)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// readHeader reads the header row and returns a column name to index map.
// All required columns must be present; extra columns are ignored.
func readHeader(r *csv.Reader, path string, required []string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}

	return idx, nil
}

func parseOrder(row []string, idx map[string]int) (OrderRecord, error) {
	var rec OrderRecord

	orderID, err := strconv.Atoi(field(row, idx, "OrderID"))
	if err != nil {
		return rec, fmt.Errorf("invalid OrderID: %w", err)
	}

	orderDate, err := parseDate(field(row, idx, "OrderDate"))
	if err != nil {
		return rec, err
	}

	quantity, err := strconv.Atoi(field(row, idx, "Quantity"))
	if err != nil {
		return rec, fmt.Errorf("invalid Quantity: %w", err)
	}
	if quantity < 1 {
		return rec, fmt.Errorf("Quantity must be positive, got %d", quantity)
	}

	price, err := parseMoney("Price", field(row, idx, "Price"))
	if err != nil {
		return rec, err
	}

	rec = OrderRecord{
		OrderID:    orderID,
		ProductID:  field(row, idx, "ProductID"),
		CustomerID: field(row, idx, "CustomerID"),
		OrderDate:  orderDate,
		Quantity:   quantity,
		Price:      price,
	}
	if rec.ProductID == "" {
		return rec, fmt.Errorf("ProductID must not be empty")
	}
	if rec.CustomerID == "" {
		return rec, fmt.Errorf("CustomerID must not be empty")
	}
	return rec, nil
}

func parseProduct(row []string, idx map[string]int) (ProductRecord, error) {
	var rec ProductRecord

	cost, err := parseMoney("Cost", field(row, idx, "Cost"))
	if err != nil {
		return rec, err
	}

	rec = ProductRecord{
		ProductID:   field(row, idx, "ProductID"),
		ProductName: field(row, idx, "ProductName"),
		Category:    field(row, idx, "Category"),
		Cost:        cost,
	}
	if rec.ProductID == "" {
		return rec, fmt.Errorf("ProductID must not be empty")
	}
	return rec, nil
}

func field(row []string, idx map[string]int, name string) string {
	i := idx[name]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid OrderDate %q", s)
}

func parseMoney(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must be non-negative, got %s", name, s)
	}
	return d, nil
}
