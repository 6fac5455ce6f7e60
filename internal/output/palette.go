// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"strings"
	"unicode"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/staranto/pengdash/internal/config"
)

// DefaultGroupColors are the species colors used when colors.species is not
// configured.
var DefaultGroupColors = map[string]string{
	"Adelie":    "purple",
	"Chinstrap": "green",
	"Gentoo":    "yellow",
}

// namedColors maps the color names accepted in config to hex values. Any other
// value is handed to lipgloss as is, so hex and ANSI numbers work too.
var namedColors = map[string]string{
	"purple": "#a569bd",
	"green":  "#2ecc71",
	"yellow": "#f4d03f",
	"red":    "#e74c3c",
	"blue":   "#3498db",
	"orange": "#e67e22",
	"cyan":   "#1abc9c",
	"white":  "#ffffff",
	"grey":   "#95a5a6",
	"gray":   "#95a5a6",
}

// fallbackColors are handed out, in order, to groups without a configured color.
var fallbackColors = []string{"#e74c3c", "#3498db", "#e67e22", "#1abc9c", "#95a5a6"}

// Palette assigns each group a color and a single-rune glyph. The glyph keeps
// groups apart when color is off.
type Palette struct {
	groups []string
	colors map[string]string
	glyphs map[string]string
}

// NewPalette builds a palette for groups, reading colors.species from config.
func NewPalette(groups []string) Palette {
	configured, err := config.GetStringMap("colors.species")
	if err != nil {
		log.WithError(err).Debug("using default group colors")
		configured = nil
	}

	p := Palette{
		groups: append([]string(nil), groups...),
		colors: make(map[string]string, len(groups)),
		glyphs: make(map[string]string, len(groups)),
	}

	next := 0
	used := map[rune]bool{}
	for _, g := range groups {
		c, ok := configured[g]
		if !ok {
			c, ok = DefaultGroupColors[g]
		}
		if !ok {
			c = fallbackColors[next%len(fallbackColors)]
			next++
		}
		if hex, named := namedColors[strings.ToLower(c)]; named {
			c = hex
		}
		p.colors[g] = c
		p.glyphs[g] = pickGlyph(g, used)
	}

	return p
}

// pickGlyph chooses the first letter of name not already taken.
func pickGlyph(name string, used map[rune]bool) string {
	for _, r := range strings.ToUpper(name) {
		if unicode.IsLetter(r) && !used[r] {
			used[r] = true
			return string(r)
		}
	}
	for _, r := range "*+#%@&=" {
		if !used[r] {
			used[r] = true
			return string(r)
		}
	}
	return "?"
}

// Groups returns the groups in palette order.
func (p Palette) Groups() []string {
	return p.groups
}

// Color returns the configured color for group, or "" if unknown.
func (p Palette) Color(group string) string {
	return p.colors[group]
}

// Glyph returns the glyph for group, or "?" if unknown.
func (p Palette) Glyph(group string) string {
	if g, ok := p.glyphs[group]; ok {
		return g
	}
	return "?"
}

// Paint renders s in the group's color when color is true.
func (p Palette) Paint(group, s string, color bool) string {
	c, ok := p.colors[group]
	if !color || !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(s)
}

// Order sorts groups into palette order, appending unknown groups as given.
func (p Palette) Order(groups []string) []string {
	present := make(map[string]bool, len(groups))
	for _, g := range groups {
		present[g] = true
	}

	out := make([]string, 0, len(groups))
	for _, g := range p.groups {
		if present[g] {
			out = append(out, g)
			delete(present, g)
		}
	}
	for _, g := range groups {
		if present[g] {
			out = append(out, g)
		}
	}
	return out
}
