// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/staranto/pengdash/internal/table"
)

// ErrBins is returned for a bin count below one.
var ErrBins = errors.New("bin count must be at least 1")

// Bin is one equal-width histogram bucket. Lo is inclusive, Hi is exclusive
// except for the last bin, which also holds the maximum.
type Bin struct {
	Lo     float64
	Hi     float64
	Counts map[string]int
}

// Total is the number of values in the bin across all groups.
func (b Bin) Total() int {
	n := 0
	for _, c := range b.Counts {
		n += c
	}
	return n
}

// Histogram is a binned count of a numeric column split by group.
type Histogram struct {
	Column string
	// Groups in first-seen order.
	Groups []string
	Bins   []Bin
	// Skipped counts rows with a missing or non-finite value.
	Skipped int
}

// MaxTotal is the largest bin total, used to scale bars.
func (h Histogram) MaxTotal() int {
	m := 0
	for _, b := range h.Bins {
		if t := b.Total(); t > m {
			m = t
		}
	}
	return m
}

// NewHistogram bins the non-missing values of column into bins equal-width
// buckets spanning their min..max, counting per value of groupColumn.
func NewHistogram(t *table.Table, column, groupColumn string, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("%w: got %d", ErrBins, bins)
	}
	vi, err := t.Lookup(column, table.Number)
	if err != nil {
		return Histogram{}, err
	}
	gi, err := t.Require(groupColumn)
	if err != nil {
		return Histogram{}, err
	}

	h := Histogram{Column: column}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < t.Len(); i++ {
		v, ok := finite(t, i, vi)
		if !ok {
			h.Skipped++
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return h, nil
	}

	// A single distinct value still gets a visible bucket.
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	h.Bins = make([]Bin, bins)
	for b := range h.Bins {
		h.Bins[b] = Bin{
			Lo:     lo + float64(b)*width,
			Hi:     lo + float64(b+1)*width,
			Counts: map[string]int{},
		}
	}
	h.Bins[bins-1].Hi = hi

	seen := map[string]bool{}
	for i := 0; i < t.Len(); i++ {
		v, ok := finite(t, i, vi)
		if !ok {
			continue
		}
		g := t.Text(i, gi)
		if !seen[g] {
			seen[g] = true
			h.Groups = append(h.Groups, g)
		}
		b := int((v - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		h.Bins[b].Counts[g]++
	}

	return h, nil
}

// finite reads a number cell, treating NaN and the infinities as missing.
func finite(t *table.Table, row, col int) (float64, bool) {
	v, ok := t.Number(row, col)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Point is one scatterplot mark.
type Point struct {
	X     float64
	Y     float64
	Group string
}

// Points extracts (x, y) pairs from t, skipping rows where either value is
// missing or non-finite.
func Points(t *table.Table, x, y, groupColumn string) ([]Point, error) {
	xi, err := t.Lookup(x, table.Number)
	if err != nil {
		return nil, err
	}
	yi, err := t.Lookup(y, table.Number)
	if err != nil {
		return nil, err
	}
	gi, err := t.Require(groupColumn)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		xv, xok := finite(t, i, xi)
		yv, yok := finite(t, i, yi)
		if !xok || !yok {
			continue
		}
		points = append(points, Point{X: xv, Y: yv, Group: t.Text(i, gi)})
	}
	return points, nil
}

// Bounds returns the min and max of the point coordinates. ok is false for
// an empty slice.
func Bounds(points []Point) (minX, maxX, minY, maxY float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY, true
}
