// Package query implements pure, side-effect-free computation over a ledger
// snapshot: date-range filtering, totals, category and per-day aggregation,
// and export row serialization. Nothing here mutates the store or its input.
package query

import (
	"sort"

	"spendlog/internal/core"
)

// FilterByDateRange returns the subsequence of records whose date lies in
// [start, end], both bounds inclusive, preserving order. An empty bound
// leaves that side open. Dates compare as plain strings: ISO-8601 dates sort
// lexicographically in chronological order, so no parsing happens here.
func FilterByDateRange(records []core.ExpenseRecord, start, end string) []core.ExpenseRecord {
	out := []core.ExpenseRecord{}
	for _, r := range records {
		if start != "" && r.Date < start {
			continue
		}
		if end != "" && r.Date > end {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Total sums the amounts of records. An empty sequence totals to zero.
func Total(records []core.ExpenseRecord) core.Money {
	var cents int64
	for _, r := range records {
		cents += r.Amount.Cents
	}
	return core.Money{Cents: cents}
}

// SummaryByCategory groups records by exact category label and sums each
// group, ranked by descending total. Labels compare case-sensitively with no
// trimming. Categories with equal totals keep the order in which they first
// appeared in the input.
func SummaryByCategory(records []core.ExpenseRecord) []core.CategoryTotal {
	totals := make(map[string]int64)
	order := []string{}
	for _, r := range records {
		if _, seen := totals[r.Category]; !seen {
			order = append(order, r.Category)
		}
		totals[r.Category] += r.Amount.Cents
	}
	out := make([]core.CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, core.CategoryTotal{Name: name, Amount: core.Money{Cents: totals[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// TotalByDay sums amounts per calendar date, ascending by date. Charting
// consumers draw line and stacked series straight from this.
func TotalByDay(records []core.ExpenseRecord) []core.DayTotal {
	totals := make(map[string]int64)
	dates := []string{}
	for _, r := range records {
		if _, seen := totals[r.Date]; !seen {
			dates = append(dates, r.Date)
		}
		totals[r.Date] += r.Amount.Cents
	}
	sort.Strings(dates)
	out := make([]core.DayTotal, 0, len(dates))
	for _, d := range dates {
		out = append(out, core.DayTotal{Date: d, Amount: core.Money{Cents: totals[d]}})
	}
	return out
}

// ExportRows copies records into writable CSV rows, order preserved, fields
// in schema order with amounts in canonical two-decimal form.
func ExportRows(records []core.ExpenseRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Date, r.Category, r.Amount.String(), r.Note})
	}
	return rows
}
