// Package reports defines the fixed reporting queries over the populated
// star schema and renders their results. Every query is a parameterless
// pure read; they are independent of each other.
package reports

import "fmt"

// Query is one fixed reporting query.
type Query struct {
	// Name is the query identifier used on the command line.
	Name string

	// Label is the human-readable heading printed above the result.
	Label string

	// Description describes what the query reports.
	Description string

	// SQL is the parameterless statement to execute.
	SQL string
}

// Queries returns the report query set in presentation order.
func Queries() []Query {
	return []Query{
		{
			Name:        "monthly_category_revenue",
			Label:       "MONTHLY REVENUE BY CATEGORY",
			Description: "Total revenue, orders, and quantity per category per month",
			SQL: `
SELECT d.year, d.month, d.month_name, p.category,
       ROUND(SUM(f.revenue), 2) AS total_revenue,
       COUNT(f.order_id) AS number_of_orders,
       SUM(f.quantity) AS total_quantity_sold
FROM fact_sales f
JOIN dim_product p ON f.product_id = p.product_id
JOIN dim_date d ON f.date_key = d.date_key
GROUP BY d.year, d.month, d.month_name, p.category
ORDER BY d.year, d.month, p.category`,
		},
		{
			Name:        "monthly_summary",
			Label:       "MONTHLY SALES SUMMARY",
			Description: "Unique products, orders, quantity, revenue, and average order value per month",
			SQL: `
SELECT d.year, d.month, d.month_name,
       COUNT(DISTINCT f.product_id) AS unique_products,
       COUNT(f.order_id) AS total_orders,
       SUM(f.quantity) AS total_quantity,
       ROUND(SUM(f.revenue), 2) AS total_revenue,
       ROUND(AVG(f.revenue), 2) AS average_order_value
FROM fact_sales f
JOIN dim_date d ON f.date_key = d.date_key
GROUP BY d.year, d.month, d.month_name
ORDER BY d.year, d.month`,
		},
		{
			Name:        "product_performance",
			Label:       "PRODUCT PERFORMANCE ANALYSIS",
			Description: "Per-product revenue, profit, and profit margin",
			// NULLIF guards the margin against zero-revenue products.
			SQL: `
SELECT p.product_name, p.category,
       COUNT(f.order_id) AS times_ordered,
       SUM(f.quantity) AS total_quantity_sold,
       ROUND(SUM(f.revenue), 2) AS total_revenue,
       ROUND(AVG(f.price), 2) AS average_selling_price,
       ROUND(SUM(f.revenue) - SUM(p.cost * f.quantity), 2) AS total_profit,
       ROUND((SUM(f.revenue) - SUM(p.cost * f.quantity))
             / NULLIF(SUM(f.revenue), 0) * 100, 2) AS profit_margin_percent
FROM fact_sales f
JOIN dim_product p ON f.product_id = p.product_id
GROUP BY p.product_id, p.product_name, p.category
ORDER BY total_revenue DESC`,
		},
		{
			Name:        "customer_analysis",
			Label:       "CUSTOMER ANALYSIS",
			Description: "Per-customer orders, items, spend, and product variety",
			SQL: `
SELECT f.customer_id,
       COUNT(f.order_id) AS number_of_orders,
       SUM(f.quantity) AS total_items_purchased,
       ROUND(SUM(f.revenue), 2) AS total_spent,
       ROUND(AVG(f.revenue), 2) AS average_order_value,
       COUNT(DISTINCT f.product_id) AS unique_products_purchased
FROM fact_sales f
GROUP BY f.customer_id
ORDER BY total_spent DESC`,
		},
		{
			Name:        "category_comparison",
			Label:       "CATEGORY PERFORMANCE COMPARISON",
			Description: "Per-category orders, customers, revenue, and revenue per customer",
			SQL: `
SELECT p.category,
       COUNT(f.order_id) AS total_orders,
       COUNT(DISTINCT f.customer_id) AS unique_customers,
       SUM(f.quantity) AS total_quantity_sold,
       ROUND(SUM(f.revenue), 2) AS total_revenue,
       ROUND(AVG(f.revenue), 2) AS average_order_value,
       ROUND(SUM(f.revenue) / COUNT(DISTINCT f.customer_id), 2) AS revenue_per_customer
FROM fact_sales f
JOIN dim_product p ON f.product_id = p.product_id
GROUP BY p.category
ORDER BY total_revenue DESC`,
		},
		{
			Name:        "data_quality",
			Label:       "DATA QUALITY CHECK",
			Description: "Fact rows whose product, date, or customer has no dimension row",
			SQL: `
SELECT 'Missing Product References' AS check_type, COUNT(*) AS count
FROM fact_sales f
LEFT JOIN dim_product p ON f.product_id = p.product_id
WHERE p.product_id IS NULL

UNION ALL

SELECT 'Missing Date References' AS check_type, COUNT(*) AS count
FROM fact_sales f
LEFT JOIN dim_date d ON f.date_key = d.date_key
WHERE d.date_key IS NULL

UNION ALL

SELECT 'Missing Customer References' AS check_type, COUNT(*) AS count
FROM fact_sales f
LEFT JOIN dim_customer c ON f.customer_id = c.customer_id
WHERE c.customer_id IS NULL`,
		},
	}
}

// Get retrieves a query by name.
func Get(name string) (Query, error) {
	for _, q := range Queries() {
		if q.Name == name {
			return q, nil
		}
	}
	return Query{}, fmt.Errorf("unknown report query: %s", name)
}
