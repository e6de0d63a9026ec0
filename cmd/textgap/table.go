package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// column is one table column. Numeric columns are right aligned, header included.
type column struct {
	Name    string
	Numeric bool
}

// scoreTable is a titled result section. Empty tables render the caption
// in place of rows.
type scoreTable struct {
	Title   string
	Columns []column
	Rows    [][]string
	Empty   string
}

func (st scoreTable) render() string {
	if len(st.Columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(st.Title)

	header := make(table.Row, len(st.Columns))
	configs := make([]table.ColumnConfig, len(st.Columns))
	for i, col := range st.Columns {
		header[i] = col.Name
		align := text.AlignLeft
		if col.Numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: align}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range st.Rows {
		row := make(table.Row, len(st.Columns))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}
	if len(st.Rows) == 0 && st.Empty != "" {
		tw.SetCaption(st.Empty)
	}

	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
