// Package models defines data structures for lead deduplication and scraping.
package models

// Row is one spreadsheet record: an ordered mapping from column name to cell
// value. Missing cells are stored as "" so every row of a dataset carries the
// same keys. A Row is never modified after construction.
type Row struct {
	columns []string
	values  map[string]string
}

// NewRow builds a Row from a header and the matching cell values. Cells past
// the end of values are set to "". The columns slice may be shared between
// rows of one dataset and must not be modified by the caller afterwards.
func NewRow(columns []string, values []string) Row {
	m := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(values) {
			m[col] = values[i]
		} else {
			m[col] = ""
		}
	}
	return Row{columns: columns, values: m}
}

// RowFromPairs builds a Row from alternating column/value arguments. It is a
// convenience for small literal rows.
func RowFromPairs(pairs ...string) Row {
	columns := make([]string, 0, len(pairs)/2)
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		columns = append(columns, pairs[i])
		values = append(values, pairs[i+1])
	}
	return NewRow(columns, values)
}

// Get returns the value stored under column and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value stored under column, or "" when absent.
func (r Row) Value(column string) string {
	return r.values[column]
}

// Each calls fn for every column in order until fn returns false.
func (r Row) Each(fn func(column, value string) bool) {
	for _, col := range r.columns {
		if !fn(col, r.values[col]) {
			return
		}
	}
}

// Values returns the cell values in column order.
func (r Row) Values() []string {
	out := make([]string, len(r.columns))
	for i, col := range r.columns {
		out[i] = r.values[col]
	}
	return out
}
