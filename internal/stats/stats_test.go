// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/pengdash/internal/table"
)

func fixture(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(table.Schema{
		{Name: "species", Kind: table.String},
		{Name: "body_mass_g", Kind: table.Number},
		{Name: "bill_depth_mm", Kind: table.Number},
	}, []table.Row{
		{"Adelie", 3000.0, 18.0},
		{"Adelie", 3500.0, 19.0},
		{"Gentoo", 5000.0, 14.0},
		{"Gentoo", nil, 15.0},
		{"Chinstrap", 4000.0, nil},
	})
	require.NoError(t, err)
	return tbl
}

func TestNewHistogram(t *testing.T) {
	h, err := NewHistogram(fixture(t), "body_mass_g", "species", 2)
	require.NoError(t, err)

	require.Len(t, h.Bins, 2)
	assert.Equal(t, 3000.0, h.Bins[0].Lo)
	assert.Equal(t, 4000.0, h.Bins[0].Hi)
	assert.Equal(t, 5000.0, h.Bins[1].Hi)
	assert.Equal(t, map[string]int{"Adelie": 2}, h.Bins[0].Counts)
	assert.Equal(t, map[string]int{"Gentoo": 1, "Chinstrap": 1}, h.Bins[1].Counts, "lower edge is inclusive, max lands in last bin")
	assert.Equal(t, []string{"Adelie", "Gentoo", "Chinstrap"}, h.Groups)
	assert.Equal(t, 1, h.Skipped)
	assert.Equal(t, 2, h.MaxTotal())
}

func TestNewHistogramSingleBin(t *testing.T) {
	h, err := NewHistogram(fixture(t), "body_mass_g", "species", 1)
	require.NoError(t, err)
	require.Len(t, h.Bins, 1)
	assert.Equal(t, 4, h.Bins[0].Total())
}

func TestNewHistogramSingleValue(t *testing.T) {
	tbl := fixture(t).Select([]int{0})
	h, err := NewHistogram(tbl, "body_mass_g", "species", 3)
	require.NoError(t, err)
	require.Len(t, h.Bins, 3)
	assert.Equal(t, 2999.5, h.Bins[0].Lo)
	assert.Equal(t, 3000.5, h.Bins[2].Hi)
	assert.Equal(t, 1, h.Bins[1].Total())
}

func TestNewHistogramEmpty(t *testing.T) {
	tbl := fixture(t).Select(nil)
	h, err := NewHistogram(tbl, "body_mass_g", "species", 5)
	require.NoError(t, err)
	assert.Empty(t, h.Bins)
	assert.Equal(t, 0, h.MaxTotal())
}

func TestNewHistogramNonFinite(t *testing.T) {
	tests := []struct {
		name string
		bad  float64
	}{
		{"nan", math.NaN()},
		{"+inf", math.Inf(1)},
		{"-inf", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := table.New(table.Schema{
				{Name: "species", Kind: table.String},
				{Name: "body_mass_g", Kind: table.Number},
			}, []table.Row{
				{"Adelie", 3000.0},
				{"Adelie", tt.bad},
				{"Gentoo", 5000.0},
			})
			require.NoError(t, err)

			var h Histogram
			require.NotPanics(t, func() {
				h, err = NewHistogram(tbl, "body_mass_g", "species", 4)
			})
			require.NoError(t, err)
			require.Len(t, h.Bins, 4)
			assert.Equal(t, 3000.0, h.Bins[0].Lo)
			assert.Equal(t, 5000.0, h.Bins[3].Hi)
			assert.Equal(t, 1, h.Skipped)
			assert.Equal(t, 1, h.Bins[0].Total())
			assert.Equal(t, 1, h.Bins[3].Total())

			pts, err := Points(tbl, "body_mass_g", "body_mass_g", "species")
			require.NoError(t, err)
			assert.Len(t, pts, 2)
		})
	}
}

func TestNewHistogramAllNonFinite(t *testing.T) {
	tbl, err := table.New(table.Schema{
		{Name: "species", Kind: table.String},
		{Name: "body_mass_g", Kind: table.Number},
	}, []table.Row{
		{"Adelie", math.NaN()},
		{"Gentoo", math.Inf(1)},
	})
	require.NoError(t, err)

	h, err := NewHistogram(tbl, "body_mass_g", "species", 3)
	require.NoError(t, err)
	assert.Empty(t, h.Bins)
	assert.Equal(t, 2, h.Skipped)
}

func TestNewHistogramErrors(t *testing.T) {
	tbl := fixture(t)

	_, err := NewHistogram(tbl, "body_mass_g", "species", 0)
	assert.ErrorIs(t, err, ErrBins)

	_, err = NewHistogram(tbl, "flipper_length_mm", "species", 3)
	assert.ErrorIs(t, err, table.ErrMissingColumn)

	_, err = NewHistogram(tbl, "species", "species", 3)
	assert.ErrorIs(t, err, table.ErrWrongKind)
}

func TestPoints(t *testing.T) {
	pts, err := Points(fixture(t), "body_mass_g", "bill_depth_mm", "species")
	require.NoError(t, err)

	assert.Equal(t, []Point{
		{X: 3000, Y: 18, Group: "Adelie"},
		{X: 3500, Y: 19, Group: "Adelie"},
		{X: 5000, Y: 14, Group: "Gentoo"},
	}, pts)

	minX, maxX, minY, maxY, ok := Bounds(pts)
	assert.True(t, ok)
	assert.Equal(t, []float64{3000, 5000, 14, 19}, []float64{minX, maxX, minY, maxY})

	_, _, _, _, ok = Bounds(nil)
	assert.False(t, ok)
}

func TestPointsMissingColumn(t *testing.T) {
	_, err := Points(fixture(t), "body_mass_g", "nope", "species")
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}
