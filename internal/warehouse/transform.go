package warehouse

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/internal/source"
)

// DateKey normalizes a calendar date to its canonical YYYY-MM-DD form.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Quarter derives the calendar quarter (1-4) for a month (1-12).
func Quarter(month int) int {
	return (month-1)/3 + 1
}

// BuildFacts derives one fact row per order line, computing
// revenue = quantity * price and the normalized date key.
func BuildFacts(orders []source.OrderRecord) []FactRow {
	facts := make([]FactRow, 0, len(orders))
	for _, o := range orders {
		qty := decimal.NewFromInt(int64(o.Quantity))
		facts = append(facts, FactRow{
			OrderID:    o.OrderID,
			ProductID:  o.ProductID,
			CustomerID: o.CustomerID,
			DateKey:    DateKey(o.OrderDate),
			Quantity:   o.Quantity,
			Price:      o.Price,
			Revenue:    qty.Mul(o.Price),
		})
	}
	return facts
}

// BuildDateDim builds one dimension row per distinct order date, with
// year/month/day/month-name/quarter derived from the calendar date.
// Rows are ordered by date key.
func BuildDateDim(orders []source.OrderRecord) []DateRow {
	seen := make(map[string]time.Time)
	for _, o := range orders {
		key := DateKey(o.OrderDate)
		if _, ok := seen[key]; !ok {
			// Truncate to midnight so full_date carries no time component.
			d := o.OrderDate
			seen[key] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]DateRow, 0, len(keys))
	for _, key := range keys {
		d := seen[key]
		rows = append(rows, DateRow{
			DateKey:   key,
			FullDate:  d,
			Year:      d.Year(),
			Month:     int(d.Month()),
			Day:       d.Day(),
			MonthName: d.Month().String(),
			Quarter:   Quarter(int(d.Month())),
		})
	}
	return rows
}

// BuildProductDim builds one dimension row per distinct product identifier,
// carrying name/category/cost through unchanged. The first occurrence wins
// if the source repeats an identifier.
func BuildProductDim(products []source.ProductRecord) []ProductRow {
	seen := make(map[string]bool, len(products))
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		if seen[p.ProductID] {
			continue
		}
		seen[p.ProductID] = true
		rows = append(rows, ProductRow{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    p.Category,
			Cost:        p.Cost,
		})
	}
	return rows
}

// BuildCustomerDim builds one dimension row per distinct customer
// identifier appearing in orders, in first-seen order.
func BuildCustomerDim(orders []source.OrderRecord) []CustomerRow {
	seen := make(map[string]bool)
	rows := make([]CustomerRow, 0)
	for _, o := range orders {
		if seen[o.CustomerID] {
			continue
		}
		seen[o.CustomerID] = true
		rows = append(rows, CustomerRow{CustomerID: o.CustomerID})
	}
	return rows
}

// Transform runs all transform stages and assembles the star schema for
// one run. Each stage takes only its inputs and returns its output; no
// state is shared between stages.
func Transform(orders []source.OrderRecord, products []source.ProductRecord) *Star {
	return &Star{
		Products:  BuildProductDim(products),
		Dates:     BuildDateDim(orders),
		Customers: BuildCustomerDim(orders),
		Facts:     BuildFacts(orders),
	}
}

// MissingProductRefs returns the distinct product identifiers referenced
// by fact rows but absent from the product dimension, sorted. These rows
// still load; the data-quality report counts them after the fact.
func (s *Star) MissingProductRefs() []string {
	known := make(map[string]bool, len(s.Products))
	for _, p := range s.Products {
		known[p.ProductID] = true
	}

	seen := make(map[string]bool)
	var missing []string
	for _, f := range s.Facts {
		if !known[f.ProductID] && !seen[f.ProductID] {
			seen[f.ProductID] = true
			missing = append(missing, f.ProductID)
		}
	}
	sort.Strings(missing)
	return missing
}
