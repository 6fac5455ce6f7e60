// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	All      key.Binding
	None     key.Binding
	NextAttr key.Binding
	PrevAttr key.Binding
	MoreBins key.Binding
	LessBins key.Binding
	MoreMass key.Binding
	LessMass key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle species"),
		),
		All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all species")),
		None:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no species")),
		NextAttr: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next attribute")),
		PrevAttr: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev attribute")),
		MoreBins: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "attribute bins")),
		LessBins: key.NewBinding(key.WithKeys("-", "_")),
		MoreMass: key.NewBinding(key.WithKeys("}"), key.WithHelp("{/}", "mass bins")),
		LessMass: key.NewBinding(key.WithKeys("{")),
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next panel")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev panel")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextTab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.All, k.None},
		{k.NextAttr, k.PrevAttr, k.MoreBins, k.MoreMass},
		{k.NextTab, k.PrevTab, k.Help, k.Quit},
	}
}
