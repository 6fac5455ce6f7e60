// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Name: "species", Kind: String},
	{Name: "body_mass_g", Kind: Number},
}

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(testSchema, []Row{
		{"Adelie", 3750.0},
		{"Gentoo", 5700.0},
		{"Adelie", nil},
		{"Chinstrap", 3500.0},
	})
	require.NoError(t, err)
	return tbl
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Row
		wantErr bool
	}{
		{name: "valid", rows: []Row{{"Adelie", 1.0}}},
		{name: "nil rows", rows: nil},
		{name: "missing cells allowed", rows: []Row{{nil, nil}}},
		{name: "short row", rows: []Row{{"Adelie"}}, wantErr: true},
		{name: "wrong number kind", rows: []Row{{"Adelie", "heavy"}}, wantErr: true},
		{name: "wrong string kind", rows: []Row{{1.0, 1.0}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(testSchema, tt.rows)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), tbl.Len())
		})
	}
}

func TestAccessors(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 1, tbl.ColumnIndex("body_mass_g"))
	assert.Equal(t, -1, tbl.ColumnIndex("nope"))
	assert.Equal(t, "Gentoo", tbl.String(1, 0))
	assert.Equal(t, "", tbl.String(1, 1))

	v, ok := tbl.Number(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 3750.0, v)

	_, ok = tbl.Number(2, 1)
	assert.False(t, ok, "missing cell")

	assert.Nil(t, tbl.Value(99, 0))
	assert.Equal(t, []string{"species", "body_mass_g"}, tbl.Schema().Names())
}

func TestLookup(t *testing.T) {
	tbl := testTable(t)

	i, err := tbl.Lookup("species", String)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	_, err = tbl.Lookup("island", String)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "island")

	_, err = tbl.Lookup("species", Number)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestWherePreservesOrder(t *testing.T) {
	tbl := testTable(t)

	got := tbl.Where(func(i int) bool { return tbl.String(i, 0) != "Gentoo" })

	require.Equal(t, 3, got.Len())
	assert.Equal(t, "Adelie", got.String(0, 0))
	assert.Equal(t, "Adelie", got.String(1, 0))
	assert.Equal(t, "Chinstrap", got.String(2, 0))
	assert.Equal(t, tbl.Schema(), got.Schema())
}

func TestWhereNothing(t *testing.T) {
	tbl := testTable(t)

	got := tbl.Where(func(int) bool { return false })

	assert.Equal(t, 0, got.Len())
	assert.Equal(t, testSchema, got.Schema())
	assert.True(t, got.Equal(Empty(testSchema)))
}

func TestDistinct(t *testing.T) {
	tbl := testTable(t)
	assert.Equal(t, []string{"Adelie", "Gentoo", "Chinstrap"}, tbl.Distinct(0))
	assert.Equal(t, []string{"3750", "5700", "3500"}, tbl.Distinct(1), "numbers are formatted, missing cells skipped")
}

func TestTextAndRequire(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, "Gentoo", tbl.Text(1, 0))
	assert.Equal(t, "3750", tbl.Text(0, 1))
	assert.Equal(t, "", tbl.Text(2, 1), "missing cell")

	i, err := tbl.Require("body_mass_g")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = tbl.Require("island")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestRecords(t *testing.T) {
	tbl := testTable(t)
	recs := tbl.Records()

	require.Len(t, recs, 4)
	assert.Equal(t, "Adelie", recs[0]["species"])
	assert.Equal(t, 3750.0, recs[0]["body_mass_g"])
	assert.Nil(t, recs[2]["body_mass_g"])
}

func TestEqual(t *testing.T) {
	a := testTable(t)
	b := testTable(t)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(a.Select([]int{0, 1})))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Table)(nil).Equal(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "number", Number.String())
}
