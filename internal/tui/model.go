// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/staranto/pengdash/internal/dashboard"
	"github.com/staranto/pengdash/internal/output"
	"github.com/staranto/pengdash/internal/table"
)

// Panels, in tab order.
const (
	PanelTable = iota
	PanelGrid
	PanelHistograms
	PanelScatter
)

var panelNames = []string{"Data Table", "Data Grid", "Histograms", "Scatterplot"}

const (
	defaultTitle = "Penguin Data"
	// chrome is the number of lines used around the active panel.
	chrome      = 9
	minColWidth = 6
	maxColWidth = 18
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#888888"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("#00c8f0"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
)

// Options customize the Model.
type Options struct {
	Title string
	// Panel is the panel shown first.
	Panel int
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	dash    *dashboard.Dashboard
	palette output.Palette
	title   string

	keys  keyMap
	help  help.Model
	table btable.Model

	panel  int
	width  int
	height int

	// shown is the filtered table currently loaded into the bubbles table.
	// The dashboard hands back the same pointer until the selection changes.
	shown *table.Table
	err   error
}

// New builds a Model over d.
func New(d *dashboard.Dashboard, opts Options) Model {
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}

	t := btable.New(btable.WithFocused(true))
	styles := btable.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#f6be00"))
	t.SetStyles(styles)

	m := Model{
		dash:    d,
		palette: output.NewPalette(d.Selection().Groups()),
		title:   title,
		keys:    newKeyMap(),
		help:    help.New(),
		table:   t,
		panel:   opts.Panel % len(panelNames),
		width:   output.DefaultWidth,
		height:  24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(m.bodyHeight())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Toggle):
			m.toggle(msg.String())
		case key.Matches(msg, m.keys.All):
			m.dash.Selection().All()
		case key.Matches(msg, m.keys.None):
			m.dash.Selection().None()
		case key.Matches(msg, m.keys.NextAttr):
			m.dash.CycleAttribute(1)
		case key.Matches(msg, m.keys.PrevAttr):
			m.dash.CycleAttribute(-1)
		case key.Matches(msg, m.keys.MoreBins):
			m.dash.SetAttributeBins(m.dash.AttributeBins() + 1)
		case key.Matches(msg, m.keys.LessBins):
			m.dash.SetAttributeBins(m.dash.AttributeBins() - 1)
		case key.Matches(msg, m.keys.MoreMass):
			m.dash.SetMassBins(m.dash.MassBins() + 1)
		case key.Matches(msg, m.keys.LessMass):
			m.dash.SetMassBins(m.dash.MassBins() - 1)
		case key.Matches(msg, m.keys.NextTab):
			m.panel = (m.panel + 1) % len(panelNames)
		case key.Matches(msg, m.keys.PrevTab):
			m.panel = (m.panel + len(panelNames) - 1) % len(panelNames)
		default:
			if m.panel == PanelTable {
				var cmd tea.Cmd
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			}
		}
		m.refresh()
	}

	return m, nil
}

// toggle flips the species bound to digit k, counting from 1.
func (m *Model) toggle(k string) {
	groups := m.dash.Selection().Groups()
	i := int(k[0] - '1')
	if i < 0 || i >= len(groups) {
		return
	}
	m.dash.Selection().Toggle(groups[i])
}

// refresh reloads the bubbles table when the filtered view changed.
func (m *Model) refresh() {
	filtered, err := m.dash.FilteredData()
	m.err = err
	if err != nil {
		log.WithError(err).Error("filtered data")
		return
	}
	if filtered == m.shown {
		return
	}
	m.shown = filtered

	schema := filtered.Schema()
	widths := make([]int, len(schema))
	for j, c := range schema {
		widths[j] = max(len(c.Name), minColWidth)
	}

	rows := make([]btable.Row, 0, filtered.Len())
	for i := 0; i < filtered.Len(); i++ {
		row := make(btable.Row, len(schema))
		for j := range schema {
			row[j] = output.InterfaceToString(filtered.Value(i, j), "NA")
			widths[j] = max(widths[j], len(row[j]))
		}
		rows = append(rows, row)
	}

	cols := make([]btable.Column, len(schema))
	for j, c := range schema {
		cols[j] = btable.Column{Title: c.Name, Width: min(widths[j], maxColWidth)}
	}

	// Columns first so rows never outnumber them while rendering.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetHeight(m.bodyHeight())
	m.table.GotoTop()
}

func (m Model) bodyHeight() int {
	return max(m.height-chrome, 3)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.selectionView())
	b.WriteString("\n")
	b.WriteString(m.controlsView())
	b.WriteString("\n\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(clip(m.panelView(), m.bodyHeight()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) selectionView() string {
	sel := m.dash.Selection().Get()
	parts := make([]string, 0, len(m.dash.Selection().Groups()))
	for i, g := range m.dash.Selection().Groups() {
		box := "[ ]"
		if sel.Contains(g) {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Color(g)))
		parts = append(parts, fmt.Sprintf("%d %s %s", i+1, box, style.Render(g)))
	}
	return strings.Join(parts, "   ")
}

func (m Model) controlsView() string {
	rows := 0
	if m.shown != nil {
		rows = m.shown.Len()
	}
	return statusStyle.Render(fmt.Sprintf(
		"attribute %s (%d bins)  mass (%d bins)  %s of %s rows",
		m.dash.Attribute(), m.dash.AttributeBins(), m.dash.MassBins(),
		humanize.Comma(int64(rows)), humanize.Comma(int64(m.dash.Base().Len())),
	))
}

func (m Model) tabsView() string {
	tabs := make([]string, len(panelNames))
	for i, name := range panelNames {
		if i == m.panel {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) panelView() string {
	opts := output.Options{Output: "text", Color: true, Titles: true, Width: m.chartWidth()}

	switch m.panel {
	case PanelTable:
		return m.table.View()
	case PanelGrid:
		var buf bytes.Buffer
		opts.Layout = output.LayoutGrid
		if err := output.SliceDiceSpit(m.shown, opts, &buf); err != nil {
			return errorStyle.Render(err.Error())
		}
		return buf.String()
	case PanelHistograms:
		attr, err := m.dash.AttributeHistogram()
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		mass, err := m.dash.MassHistogram()
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return output.RenderHistogram(attr, m.palette, opts.Width, true) + "\n\n" +
			output.RenderHistogram(mass, m.palette, opts.Width, true)
	case PanelScatter:
		points, err := m.dash.Scatter()
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return output.RenderScatter(points, dashboard.ScatterX, dashboard.ScatterY, m.palette, opts.Width, true)
	}
	return ""
}

func (m Model) chartWidth() int {
	return min(max(m.width-2, 20), 120)
}

// Panel reports the active panel.
func (m Model) Panel() int { return m.panel }

// clip keeps the first n lines of s.
func clip(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n")
}
