// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/staranto/pengdash/internal/stats"
)

const (
	barGlyph     = "█"
	pointGlyph   = "●"
	scatterRows  = 16
	minPlotWidth = 10
)

// formatEdge prints a bin edge or axis value with at most one decimal.
func formatEdge(v float64) string {
	return humanize.FtoaWithDigits(v, 1)
}

// RenderHistogram draws h as horizontal stacked bars, one line per bin, each
// group a run of its glyph (or colored block when color is true).
func RenderHistogram(h stats.Histogram, p Palette, width int, color bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%s (%d bins", h.Column, len(h.Bins))
	if h.Skipped > 0 {
		title += fmt.Sprintf(", %s missing", humanize.Comma(int64(h.Skipped)))
	}
	title += ")"
	b.WriteString(paintTitle(title, color))
	b.WriteString("\n")

	if len(h.Bins) == 0 {
		b.WriteString("no data\n")
		return b.String()
	}

	labels := make([]string, len(h.Bins))
	counts := make([]string, len(h.Bins))
	labelWidth, countWidth := 0, 0
	for i, bin := range h.Bins {
		labels[i] = fmt.Sprintf("%s – %s", formatEdge(bin.Lo), formatEdge(bin.Hi))
		counts[i] = humanize.Comma(int64(bin.Total()))
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
		countWidth = max(countWidth, len(counts[i]))
	}

	barWidth := width - labelWidth - countWidth - 3
	if barWidth < minPlotWidth {
		barWidth = minPlotWidth
	}

	groups := p.Order(h.Groups)
	maxTotal := h.MaxTotal()

	for i, bin := range h.Bins {
		b.WriteString(padLeft(labels[i], labelWidth))
		b.WriteString(" │")

		drawn, cum := 0, 0
		for _, g := range groups {
			cum += bin.Counts[g]
			end := scale(cum, maxTotal, barWidth)
			if n := end - drawn; n > 0 {
				glyph := p.Glyph(g)
				if color {
					glyph = barGlyph
				}
				b.WriteString(p.Paint(g, strings.Repeat(glyph, n), color))
				drawn = end
			}
		}

		b.WriteString(strings.Repeat(" ", barWidth-drawn+1))
		b.WriteString(padLeft(counts[i], countWidth))
		b.WriteString("\n")
	}

	b.WriteString(legend(groups, p, color))
	return b.String()
}

// scale maps n of total onto width columns.
func scale(n, total, width int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * float64(width) / float64(total)))
}

// RenderScatter plots points on a character canvas. Later points overwrite
// earlier ones that land on the same cell.
func RenderScatter(points []stats.Point, xLabel, yLabel string, p Palette, width int, color bool) string {
	var b strings.Builder

	b.WriteString(paintTitle(fmt.Sprintf("%s vs %s (%s points)", yLabel, xLabel, humanize.Comma(int64(len(points)))), color))
	b.WriteString("\n")

	minX, maxX, minY, maxY, ok := stats.Bounds(points)
	if !ok {
		b.WriteString("no data\n")
		return b.String()
	}

	top, bottom := formatEdge(maxY), formatEdge(minY)
	axisWidth := max(len(top), len(bottom))

	plotWidth := width - axisWidth - 2
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}

	canvas := make([][]string, scatterRows)
	for r := range canvas {
		canvas[r] = make([]string, plotWidth)
	}

	for _, pt := range points {
		col := position(pt.X, minX, maxX, plotWidth)
		row := scatterRows - 1 - position(pt.Y, minY, maxY, scatterRows)
		canvas[row][col] = pt.Group
	}

	seen := map[string]bool{}
	var groups []string
	for _, pt := range points {
		if !seen[pt.Group] {
			seen[pt.Group] = true
			groups = append(groups, pt.Group)
		}
	}

	for r, cells := range canvas {
		switch r {
		case 0:
			b.WriteString(padLeft(top, axisWidth))
		case scatterRows - 1:
			b.WriteString(padLeft(bottom, axisWidth))
		default:
			b.WriteString(strings.Repeat(" ", axisWidth))
		}
		b.WriteString(" │")
		for _, g := range cells {
			switch {
			case g == "":
				b.WriteString(" ")
			case color:
				b.WriteString(p.Paint(g, pointGlyph, true))
			default:
				b.WriteString(p.Glyph(g))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", axisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", plotWidth))
	b.WriteString("\n")

	left, right := formatEdge(minX), formatEdge(maxX)
	gap := plotWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", axisWidth+2))
	b.WriteString(left + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")

	b.WriteString(legend(p.Order(groups), p, color))
	return b.String()
}

// position maps v within lo..hi onto 0..cells-1. A zero range lands in the
// middle.
func position(v, lo, hi float64, cells int) int {
	if hi == lo {
		return cells / 2
	}
	i := int(math.Round((v - lo) / (hi - lo) * float64(cells-1)))
	return min(max(i, 0), cells-1)
}

func legend(groups []string, p Palette, color bool) string {
	if len(groups) == 0 {
		return ""
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		mark := p.Glyph(g)
		if color {
			mark = p.Paint(g, barGlyph, true)
		}
		parts = append(parts, mark+" "+g)
	}
	return strings.Join(parts, "  ") + "\n"
}

func paintTitle(s string, color bool) string {
	if !color {
		return s
	}
	header, _, _ := getColors("colors")
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(header)).Render(s)
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// HistogramWriter writes a rendered histogram to w.
func HistogramWriter(h stats.Histogram, p Palette, opts Options, w io.Writer) {
	fmt.Fprintln(w, RenderHistogram(h, p, opts.width(), opts.Color))
}

// ScatterWriter writes a rendered scatterplot to w.
func ScatterWriter(points []stats.Point, xLabel, yLabel string, p Palette, opts Options, w io.Writer) {
	fmt.Fprintln(w, RenderScatter(points, xLabel, yLabel, p, opts.width(), opts.Color))
}
