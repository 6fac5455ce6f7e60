// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	lgtable "github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/pengdash/internal/attrs"
	"github.com/staranto/pengdash/internal/config"
	"github.com/staranto/pengdash/internal/filters"
	"github.com/staranto/pengdash/internal/table"
)

// Layouts for text output of records.
const (
	LayoutTable = "table"
	LayoutGrid  = "grid"
)

// Options control how records are sliced, diced and spit out.
type Options struct {
	// Output is text, json or yaml.
	Output string
	Attrs  string
	Filter string
	Sort   string
	Color  bool
	Titles bool
	// Layout is LayoutTable or LayoutGrid and only applies to text output.
	Layout string
	// Width caps chart width. Zero means the terminal width.
	Width int
}

// OptionsFromCommand reads the shared output flags of cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output: cmd.String("output"),
		Attrs:  cmd.String("attrs"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
		Layout: LayoutTable,
	}
}

func (o Options) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return TerminalWidth()
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a table according to opts.
func SliceDiceSpit(t *table.Table, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	list, err := attrs.ForSchema(t.Schema(), opts.Attrs)
	if err != nil {
		return fmt.Errorf("invalid --attrs: %w", err)
	}

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a
	// smaller dataset.
	t = filters.FilterTable(t, list, opts.Filter)

	records := Records(t, list)

	// Sort before transforming so numbers still sort as numbers.
	SortDataset(records, opts.Sort)

	for _, row := range records {
		for i := range list {
			attr := list[i]
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	switch opts.Output {
	case "json":
		out, err := json.Marshal(included(records, list))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(included(records, list))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		if opts.Layout == LayoutGrid {
			GridWriter(records, list, opts, w)
		} else {
			TableWriter(records, list, opts, w)
		}
	}
	return nil
}

// Records converts the rows of t into maps keyed by attr output key. Attrs
// that are excluded from output are still present so they can drive sorting.
func Records(t *table.Table, list attrs.AttrList) []map[string]interface{} {
	type binding struct {
		key string
		col int
	}
	var bindings []binding
	for _, attr := range list {
		if attr.Key == "*" {
			continue
		}
		if col := t.ColumnIndex(attr.Key); col >= 0 {
			bindings = append(bindings, binding{key: attr.OutputKey, col: col})
		}
	}

	records := make([]map[string]interface{}, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rec := make(map[string]interface{}, len(bindings))
		for _, b := range bindings {
			rec[b.key] = t.Value(i, b.col)
		}
		records = append(records, rec)
	}
	return records
}

// included drops the excluded attrs from each record.
func included(records []map[string]interface{}, list attrs.AttrList) []map[string]interface{} {
	keep := list.Included()
	out := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		rec := make(map[string]interface{}, len(keep))
		for _, attr := range keep {
			rec[attr.OutputKey] = r[attr.OutputKey]
		}
		out = append(out, rec)
	}
	return out
}

func tableRows(records []map[string]interface{}, list attrs.AttrList) [][]string {
	keep := list.Included()
	rows := make([][]string, 0, len(records))
	for _, result := range records {
		row := make([]string, 0, len(keep))
		for _, attr := range keep {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}
	return rows
}

func headers(list attrs.AttrList) []string {
	var h []string
	for _, attr := range list.Included() {
		h = append(h, attr.OutputKey)
	}
	return h
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	list attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	t := lgtable.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == lgtable.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(tableRows(resultSet, list)...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers(list)...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// GridWriter renders the result set as a bordered grid with row numbers and
// numbers aligned right.
func GridWriter(
	resultSet []map[string]interface{},
	list attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	keep := list.Included()
	rows := tableRows(resultSet, list)
	for i := range rows {
		rows[i] = append([]string{strconv.Itoa(i + 1)}, rows[i]...)
	}

	numeric := make([]bool, len(keep)+1)
	numeric[0] = true
	for j, attr := range keep {
		for _, r := range resultSet {
			if _, ok := r[attr.OutputKey].(float64); ok {
				numeric[j+1] = true
				break
			}
		}
	}

	borderStyle := lipgloss.NewStyle()
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if opts.Color {
		headerColor, _, _ := getColors("colors")
		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		borderStyle = borderStyle.Foreground(lipgloss.Color(headerColor))
	}

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col < len(numeric) && numeric[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		}).
		Headers(append([]string{"#"}, headers(list)...)...).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// DumpSchema prints the columns of t with their kind and how many values are
// present, followed by the distinct values of groupColumn.
func DumpSchema(t *table.Table, groupColumn string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for j, c := range t.Schema() {
		present := 0
		for i := 0; i < t.Len(); i++ {
			if t.Value(i, j) != nil {
				present++
			}
		}
		rows = append(rows, []string{c.Name, c.Kind.String(), humanize.Comma(int64(present))})
	}

	tbl := lgtable.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Headers("Column", "Kind", "Present").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintf(w, "Schema for %s rows --\n", humanize.Comma(int64(t.Len())))
	fmt.Fprintln(w, tbl)

	if col := t.ColumnIndex(groupColumn); col >= 0 {
		fmt.Fprintf(w, "\nGroups in %s: %s\n", groupColumn, strings.Join(t.Distinct(col), ", "))
	} else {
		fmt.Fprintf(w, "\nGroup column %s not found.\n", groupColumn)
	}
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := lgtable.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}
