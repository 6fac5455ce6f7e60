// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrWrongKind is returned when a column exists but has the wrong kind.
	ErrWrongKind = errors.New("wrong column kind")
)

// Kind is the value type of a column.
type Kind int

const (
	String Kind = iota
	Number
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	default:
		return "string"
	}
}

// Column describes a single named, typed column.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of columns of a Table.
type Schema []Column

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Row holds one cell per schema column. A cell is a string, a float64 or nil
// for a missing value.
type Row []any

// Table is an immutable, in-memory, row oriented dataset. Subsets produced by
// Select share cells with their parent, so callers must never mutate the
// rows they read.
type Table struct {
	schema Schema
	rows   []Row
}

// New builds a Table, checking that every row matches the schema width and
// that cells agree with their column kind.
func New(schema Schema, rows []Row) (*Table, error) {
	for i, r := range rows {
		if len(r) != len(schema) {
			return nil, fmt.Errorf("row %d has %d cells, schema has %d columns", i, len(r), len(schema))
		}
		for j, cell := range r {
			if cell == nil {
				continue
			}
			switch schema[j].Kind {
			case Number:
				if _, ok := cell.(float64); !ok {
					return nil, fmt.Errorf("row %d column %s: expected number, got %T", i, schema[j].Name, cell)
				}
			case String:
				if _, ok := cell.(string); !ok {
					return nil, fmt.Errorf("row %d column %s: expected string, got %T", i, schema[j].Name, cell)
				}
			}
		}
	}
	if rows == nil {
		rows = []Row{}
	}
	return &Table{schema: schema, rows: rows}, nil
}

// Empty returns a zero-row table with the given schema.
func Empty(schema Schema) *Table {
	return &Table{schema: schema, rows: []Row{}}
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Schema() Schema { return t.schema }

func (t *Table) ColumnIndex(name string) int { return t.schema.Index(name) }

// Require returns the index of a required column of any kind.
func (t *Table) Require(name string) (int, error) {
	i := t.schema.Index(name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return i, nil
}

// Lookup returns the index of a required column of the given kind.
func (t *Table) Lookup(name string, kind Kind) (int, error) {
	i := t.schema.Index(name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	if t.schema[i].Kind != kind {
		return -1, fmt.Errorf("%w: %q is %s, want %s", ErrWrongKind, name, t.schema[i].Kind, kind)
	}
	return i, nil
}

// Row returns the cells of row i.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Value returns the raw cell at (row, col).
func (t *Table) Value(row, col int) any {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.schema) {
		return nil
	}
	return t.rows[row][col]
}

// String returns the cell as a string. Missing and non-string cells yield "".
func (t *Table) String(row, col int) string {
	s, _ := t.Value(row, col).(string)
	return s
}

// Text formats the cell as a group label. Numbers use the shortest decimal
// form, so year 2007 reads "2007". Missing cells yield "".
func (t *Table) Text(row, col int) string {
	switch v := t.Value(row, col).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Number returns the cell as a float64 and whether it was present.
func (t *Table) Number(row, col int) (float64, bool) {
	f, ok := t.Value(row, col).(float64)
	return f, ok
}

// Select returns a new table holding the rows at the given indices, in the
// order given.
func (t *Table) Select(indices []int) *Table {
	rows := make([]Row, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, t.rows[i])
	}
	return &Table{schema: t.schema, rows: rows}
}

// Where returns the rows for which keep reports true, preserving order.
func (t *Table) Where(keep func(i int) bool) *Table {
	indices := make([]int, 0, len(t.rows))
	for i := range t.rows {
		if keep(i) {
			indices = append(indices, i)
		}
	}
	return t.Select(indices)
}

// Distinct returns the distinct non-missing values of a column, formatted
// as by Text, in first-seen order.
func (t *Table) Distinct(col int) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range t.rows {
		if t.rows[i][col] == nil {
			continue
		}
		v := t.Text(i, col)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Records converts the table into one map per row, keyed by column name.
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.rows))
	for _, r := range t.rows {
		rec := make(map[string]interface{}, len(t.schema))
		for j, c := range t.schema {
			rec[c.Name] = r[j]
		}
		out = append(out, rec)
	}
	return out
}

// Equal reports whether both tables have the same schema and the same rows in
// the same order.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	return reflect.DeepEqual(t.schema, o.schema) && reflect.DeepEqual(t.rows, o.rows)
}
