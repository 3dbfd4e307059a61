package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. maxWidth > 0 trims longer cells so
// long URLs and error messages do not wrap the table.
type column struct {
	header   string
	align    text.Align
	maxWidth int
}

func leftColumn(header string) column {
	return column{header: header, align: text.AlignLeft}
}

func rightColumn(header string) column {
	return column{header: header, align: text.AlignRight}
}

func (c column) trimmed(width int) column {
	c.maxWidth = width
	return c
}

// renderTable draws rows under columns. A non-empty footer is appended as a
// separated summary row.
func renderTable(columns []column, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(columns, func(i int) string { return columns[i].header }))
	for _, row := range rows {
		tw.AppendRow(toRow(columns, cellAt(row)))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(columns, cellAt(footer)))
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
			AlignFooter: c.align,
		}
		if c.maxWidth > 0 {
			cfg.WidthMax = c.maxWidth
			cfg.WidthMaxEnforcer = text.Trim
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func toRow(columns []column, cell func(int) string) table.Row {
	r := make(table.Row, len(columns))
	for i := range columns {
		r[i] = cell(i)
	}
	return r
}

func cellAt(values []string) func(int) string {
	return func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
}
