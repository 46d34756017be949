package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignAuto columnAlignment = iota
	alignLeft
	alignRight
)

// renderTable draws a rounded table. Columns without an explicit alignment
// are right aligned when every cell holds a count, left aligned otherwise.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		align := alignAuto
		if i < len(aligns) {
			align = aligns[i]
		}
		if align == alignAuto {
			align = detectAlignment(rows, i)
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
		if align == alignRight {
			configs[i].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

func detectAlignment(rows [][]string, column int) columnAlignment {
	seen := false
	for _, row := range rows {
		if column >= len(row) {
			continue
		}
		if _, err := strconv.Atoi(row[column]); err != nil {
			return alignLeft
		}
		seen = true
	}
	if !seen {
		return alignLeft
	}
	return alignRight
}
