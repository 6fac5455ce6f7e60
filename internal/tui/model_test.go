// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/pengdash/internal/dashboard"
	"github.com/staranto/pengdash/internal/dataset"
	"github.com/staranto/pengdash/internal/table"
)

func newModel(t *testing.T, selected ...string) Model {
	t.Helper()
	d, err := dashboard.New(dataset.Sample(), dashboard.WithDefaultSelection(selected...))
	require.NoError(t, err)
	return New(d, Options{})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestToggleSpecies(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"initial", nil, []string{"Adelie"}},
		{"add gentoo", []string{"2"}, []string{"Adelie", "Gentoo"}},
		{"remove adelie", []string{"1"}, nil},
		{"add twice is noop", []string{"3", "3"}, []string{"Adelie"}},
		{"out of range", []string{"9"}, []string{"Adelie"}},
		{"all", []string{"a"}, []string{"Adelie", "Chinstrap", "Gentoo"}},
		{"none", []string{"n"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, "Adelie")
			for _, k := range tt.keys {
				m = send(t, m, runes(k))
			}
			got := m.dash.Selection().Get().Values()
			if len(tt.want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTableFollowsSelection(t *testing.T) {
	m := newModel(t, "Adelie")
	require.NotNil(t, m.shown)
	assert.Equal(t, 152, m.shown.Len())
	assert.Len(t, m.table.Rows(), 152)

	m = send(t, m, runes("2"))
	assert.Equal(t, 276, m.shown.Len())
	assert.Len(t, m.table.Rows(), 276)

	m = send(t, m, runes("n"))
	assert.Equal(t, 0, m.shown.Len())
	assert.Empty(t, m.table.Rows())
}

func TestRefreshReusesFilteredView(t *testing.T) {
	m := newModel(t, "Adelie")
	before := m.shown
	recomputes := m.dash.Stats().Recomputes

	// Panel and chart inputs do not touch the selection.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("]"), runes("+"), runes("}"))

	assert.Same(t, before, m.shown)
	assert.Equal(t, recomputes, m.dash.Stats().Recomputes)
}

func TestChartControls(t *testing.T) {
	m := newModel(t, "Adelie")

	m = send(t, m, runes("+"), runes("+"))
	assert.Equal(t, dashboard.DefaultAttributeBins+2, m.dash.AttributeBins())

	m = send(t, m, runes("-"), runes("-"), runes("-"), runes("-"))
	assert.Equal(t, dashboard.MinAttributeBins, m.dash.AttributeBins())

	m = send(t, m, runes("{"))
	assert.Equal(t, dashboard.DefaultMassBins-1, m.dash.MassBins())

	m = send(t, m, runes("]"))
	assert.Equal(t, dashboard.Attributes[1], m.dash.Attribute())
	m = send(t, m, runes("["), runes("["))
	assert.Equal(t, dashboard.Attributes[len(dashboard.Attributes)-1], m.dash.Attribute())
}

func TestPanels(t *testing.T) {
	m := newModel(t, "Adelie", "Gentoo")
	assert.Equal(t, PanelTable, m.Panel())

	tests := []struct {
		msg   tea.Msg
		panel int
		want  string
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, PanelGrid, "bill_length_mm"},
		{tea.KeyMsg{Type: tea.KeyTab}, PanelHistograms, "body_mass_g ("},
		{tea.KeyMsg{Type: tea.KeyTab}, PanelScatter, "bill_depth_mm vs body_mass_g"},
		{tea.KeyMsg{Type: tea.KeyTab}, PanelTable, "species"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, PanelScatter, "points"},
	}
	for _, tt := range tests {
		m = send(t, m, tt.msg)
		assert.Equal(t, tt.panel, m.Panel())
		assert.Contains(t, m.View(), tt.want)
	}
}

func TestView(t *testing.T) {
	m := newModel(t, "Adelie")
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	v := m.View()
	assert.Contains(t, v, "Penguin Data")
	assert.Contains(t, v, "[x]")
	assert.Contains(t, v, "Adelie")
	assert.Contains(t, v, "152 of 344 rows")
	assert.Contains(t, v, "Data Table")
	assert.Contains(t, v, "quit")
}

func TestViewMissingGroupColumn(t *testing.T) {
	base, err := table.New(table.Schema{{Name: "island", Kind: table.String}}, []table.Row{{"Dream"}})
	require.NoError(t, err)
	d, err := dashboard.New(base)
	require.NoError(t, err)

	m := New(d, Options{Title: "Broken"})
	require.Error(t, m.err)
	assert.True(t, errors.Is(m.err, table.ErrMissingColumn))
	assert.Contains(t, m.View(), "missing column")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "a\nb", clip("a\nb\nc\n", 2))
	assert.Equal(t, "a", clip("a\n", 5))
}
