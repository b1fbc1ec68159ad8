package reports

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/olekukonko/tablewriter"

	"salesmart/internal/warehouse"
)

// Result is one executed report: a label plus a tabular result set with
// every value already formatted for display.
type Result struct {
	Label   string
	Columns []string
	Rows    [][]string
}

// Run executes a report query and collects its result set.
func Run(ctx context.Context, db warehouse.DB, q Query) (*Result, error) {
	rows, err := db.Query(ctx, q.SQL)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", q.Name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	res := &Result{Label: q.Label, Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("query %s failed: %w", q.Name, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s failed: %w", q.Name, err)
	}

	return res, nil
}

// RunAll executes every report query in presentation order.
func RunAll(ctx context.Context, db warehouse.DB) ([]*Result, error) {
	var results []*Result
	for _, q := range Queries() {
		res, err := Run(ctx, db, q)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Render writes one result to the sink. Empty results report "No rows."
// instead of an empty table.
func Render(w io.Writer, res *Result) {
	fmt.Fprintf(w, "\n%s\n", res.Label)

	if len(res.Rows) == 0 {
		fmt.Fprintln(w, "No rows.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(res.Columns)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(res.Rows)
	table.Render()

	fmt.Fprintf(w, "Total rows: %d\n", len(res.Rows))
}

// formatValue converts a pgx result value into display form.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	case pgtype.Numeric:
		if dv, err := v.Value(); err == nil {
			return fmt.Sprintf("%v", dv)
		}
		return ""
	case driver.Valuer:
		if dv, err := v.Value(); err == nil {
			return fmt.Sprintf("%v", dv)
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
