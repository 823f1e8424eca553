package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column is one table heading. Numeric columns are right aligned and show
// "-" for blank cells.
type column struct {
	title   string
	numeric bool
}

func textCol(title string) column { return column{title: title} }
func numCol(title string) column { return column{title: title, numeric: true} }

// sheet is a table printed by the list and stats commands.
type sheet struct {
	columns []column
	rows    [][]string
	// caption is printed under the table when set.
	caption string
}

func (s sheet) render() string {
	if len(s.columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	// Vietnamese headings keep their case.
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(s.columns))
	configs := make([]table.ColumnConfig, len(s.columns))
	for i, c := range s.columns {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: align}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range s.rows {
		r := make(table.Row, len(s.columns))
		for i, c := range s.columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if cell == "" && c.numeric {
				cell = "-"
			}
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	if s.caption != "" {
		tw.SetCaption(s.caption)
	}
	return tw.Render()
}
