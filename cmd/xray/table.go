package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// summaryTable is a titled table with count columns aligned right and an
// optional totals row.
type summaryTable struct {
	title   string
	headers []string
	counts  map[int]bool
	rows    []table.Row
	totals  table.Row
}

func newSummaryTable(title string, headers ...string) *summaryTable {
	return &summaryTable{title: title, headers: headers, counts: make(map[int]bool)}
}

// countColumns marks zero-based column indexes that hold numbers.
func (t *summaryTable) countColumns(indexes ...int) *summaryTable {
	for _, i := range indexes {
		t.counts[i] = true
	}
	return t
}

func (t *summaryTable) addRow(values ...string) {
	t.rows = append(t.rows, t.row(values))
}

func (t *summaryTable) setTotals(values ...string) {
	t.totals = t.row(values)
}

func (t *summaryTable) row(values []string) table.Row {
	r := make(table.Row, len(t.headers))
	for i := range r {
		r[i] = ""
		if i < len(values) {
			r[i] = values[i]
		}
	}
	return r
}

func (t *summaryTable) render() string {
	if len(t.headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	if t.title != "" {
		tw.SetTitle(t.title)
	}

	tw.AppendHeader(t.row(t.headers))
	tw.AppendRows(t.rows)
	if t.totals != nil {
		tw.AppendFooter(t.totals)
	}

	configs := make([]table.ColumnConfig, len(t.headers))
	for i := range t.headers {
		align := text.AlignLeft
		if t.counts[i] {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft, AlignFooter: align}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
