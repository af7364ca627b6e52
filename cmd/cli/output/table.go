package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// MaxCellWidth trims long titles so a single row does not wrap the terminal.
const MaxCellWidth = 60

// RenderTable prints a pretty table to stdout with a row count footer.
func RenderTable(headers []string, rows [][]interface{}) {
	renderTo(os.Stdout, headers, rows)
}

func renderTo(w io.Writer, headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	headerRow := table.Row{}
	configs := make([]table.ColumnConfig, 0, len(headers))
	for i, h := range headers {
		headerRow = append(headerRow, h)
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			WidthMax:         MaxCellWidth,
			WidthMaxEnforcer: text.Trim,
		})
	}
	t.AppendHeader(headerRow)
	t.SetColumnConfigs(configs)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(rows))})

	t.Render()
}
