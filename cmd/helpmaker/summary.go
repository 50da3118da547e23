package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	helpmaker "github.com/alnah/go-helpmaker"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// printResult reports the outcome of a job on w.
func printResult(w io.Writer, job helpmaker.Job, result *helpmaker.BuildResult) {
	switch {
	case job.Type == helpmaker.JobClean:
		fmt.Fprintf(w, "Cleaned %s\n", job.OutFile)
		return
	case result.UpToDate:
		fmt.Fprintf(w, "%s is up to date\n", job.OutFile)
		return
	}

	if len(result.Controls) > 0 {
		fmt.Fprintln(w, renderControls(result, shouldColorize(w)))
	}
	fmt.Fprintf(w, "Built %s: %d page(s), %d control(s), %d image(s)\n",
		job.OutFile, len(result.Documents), len(result.Controls), len(result.Resources))
	if n := len(result.Failures); n > 0 {
		fmt.Fprintf(w, "Skipped %d file(s):\n", n)
		for _, f := range result.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.Source, helpmaker.ErrorKind(f.Err))
		}
	}
}

// renderControls lists the control entries with the source each came from.
func renderControls(result *helpmaker.BuildResult, rounded bool) string {
	sources := make(map[string]string, len(result.Documents))
	for _, d := range result.Documents {
		sources[d.Stage2] = d.Source
	}

	rows := make([][]string, 0, len(result.Controls))
	for i, c := range result.Controls {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Control, sources[c.Path]})
	}

	style := table.StyleDefault
	if rounded {
		style = table.StyleRounded
	}
	return renderTable([]string{"#", "Control", "Source"}, rows, []columnAlignment{alignRight}, style)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, style table.Style) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// shouldColorize reports whether w is an interactive terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
