// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/apex/log"

	"github.com/staranto/pengdash/internal/reactive"
	"github.com/staranto/pengdash/internal/selection"
	"github.com/staranto/pengdash/internal/stats"
	"github.com/staranto/pengdash/internal/table"
)

// ErrMissingColumn is returned at first access when the base dataset lacks a
// column the dashboard needs.
var ErrMissingColumn = table.ErrMissingColumn

// ErrNotNumeric is returned when a plotted column is not numeric.
var ErrNotNumeric = table.ErrWrongKind

// ErrNoDataset is returned by New when no base dataset is supplied.
var ErrNoDataset = errors.New("no base dataset")

const (
	DefaultGroupColumn   = "species"
	DefaultAttribute     = "bill_length_mm"
	DefaultAttributeBins = 1
	DefaultMassBins      = 20
	MassColumn           = "body_mass_g"
	ScatterX             = "body_mass_g"
	ScatterY             = "bill_depth_mm"

	MinAttributeBins = 1
	MaxAttributeBins = 15
	MinMassBins      = 1
	MaxMassBins      = 100
)

var (
	// DefaultGroups is the fixed species enumeration, in display order.
	DefaultGroups = []string{"Adelie", "Gentoo", "Chinstrap"}
	// DefaultSelection is the selection used when none is configured. See
	// WithDefaultSelection.
	DefaultSelection = []string{"Adelie"}
	// Attributes are the numeric columns offered for the attribute histogram.
	Attributes = []string{"bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g"}
)

// Dashboard is the explicitly constructed context holding the base dataset,
// the user inputs and the views derived from them. All methods are meant to be
// called from one event loop.
type Dashboard struct {
	base        *table.Table
	groupColumn string

	selection     *selection.Selection
	attribute     *reactive.Signal[string]
	attributeBins *reactive.Signal[int]
	massBins      *reactive.Signal[int]

	filtered      *reactive.Calc[*table.Table]
	attributeHist *reactive.Calc[stats.Histogram]
	massHist      *reactive.Calc[stats.Histogram]
	scatter       *reactive.Calc[[]stats.Point]
}

type options struct {
	groupColumn   string
	groups        []string
	selected      []string
	attribute     string
	attributeBins int
	massBins      int
}

// Option customizes a Dashboard.
type Option func(*options)

// WithGroupColumn sets the categorical column filtered on. The column may be
// text or numeric; numeric cells are matched against the selection in their
// shortest decimal form, so selecting "2008" on year keeps the 2008 rows.
func WithGroupColumn(name string) Option {
	return func(o *options) { o.groupColumn = name }
}

// WithGroups sets the group enumeration offered to the user.
func WithGroups(groups ...string) Option {
	return func(o *options) { o.groups = groups }
}

// WithDefaultSelection sets the initial Filter Selection.
func WithDefaultSelection(groups ...string) Option {
	return func(o *options) { o.selected = groups }
}

// WithAttribute sets the initial attribute histogram column.
func WithAttribute(name string) Option {
	return func(o *options) { o.attribute = name }
}

// WithBins sets the initial attribute and mass histogram bin counts. Values
// outside the allowed ranges are clamped.
func WithBins(attribute, mass int) Option {
	return func(o *options) {
		o.attributeBins = attribute
		o.massBins = mass
	}
}

// New builds a Dashboard over base. Column problems are not reported here:
// they surface, clearly attributed, on first access to a view.
func New(base *table.Table, opts ...Option) (*Dashboard, error) {
	if base == nil {
		return nil, ErrNoDataset
	}

	o := options{
		groupColumn:   DefaultGroupColumn,
		groups:        DefaultGroups,
		selected:      DefaultSelection,
		attribute:     DefaultAttribute,
		attributeBins: DefaultAttributeBins,
		massBins:      DefaultMassBins,
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dashboard{
		base:          base,
		groupColumn:   o.groupColumn,
		selection:     selection.New(o.groups, selection.NewSet(o.selected...)),
		attribute:     reactive.NewSignal(o.attribute, eq[string]),
		attributeBins: reactive.NewSignal(clamp(o.attributeBins, MinAttributeBins, MaxAttributeBins), eq[int]),
		massBins:      reactive.NewSignal(clamp(o.massBins, MinMassBins, MaxMassBins), eq[int]),
	}

	d.filtered = reactive.NewCalc(d.filter, d.selection)

	d.attributeHist = reactive.NewCalc(func() (stats.Histogram, error) {
		t, err := d.filtered.Get()
		if err != nil {
			return stats.Histogram{}, err
		}
		return stats.NewHistogram(t, d.attribute.Get(), d.groupColumn, d.attributeBins.Get())
	}, d.filtered, d.attribute, d.attributeBins)

	d.massHist = reactive.NewCalc(func() (stats.Histogram, error) {
		t, err := d.filtered.Get()
		if err != nil {
			return stats.Histogram{}, err
		}
		return stats.NewHistogram(t, MassColumn, d.groupColumn, d.massBins.Get())
	}, d.filtered, d.massBins)

	d.scatter = reactive.NewCalc(func() ([]stats.Point, error) {
		t, err := d.filtered.Get()
		if err != nil {
			return nil, err
		}
		return stats.Points(t, ScatterX, ScatterY, d.groupColumn)
	}, d.filtered)

	log.WithFields(log.Fields{
		"rows":      base.Len(),
		"column":    d.groupColumn,
		"selection": d.selection.Get().String(),
	}).Debug("dashboard ready")

	return d, nil
}

// FilteredData returns the base rows whose group column value is in the
// current selection, in base order. The result is computed at most once per
// selection change and shared by every caller until the next change; callers
// must treat it as read-only.
func (d *Dashboard) FilteredData() (*table.Table, error) {
	return d.filtered.Get()
}

func (d *Dashboard) filter() (*table.Table, error) {
	col, err := d.base.Require(d.groupColumn)
	if err != nil {
		return nil, fmt.Errorf("filtering base dataset on %q: %w", d.groupColumn, err)
	}

	sel := d.selection.Get()
	if sel.IsEmpty() {
		return table.Empty(d.base.Schema()), nil
	}

	t := d.base.Where(func(i int) bool {
		return sel.Contains(d.base.Text(i, col))
	})
	log.WithFields(log.Fields{
		"selection": sel.String(),
		"rows":      t.Len(),
	}).Debug("recomputed filtered view")
	return t, nil
}

// AttributeHistogram bins the selected attribute of the filtered view.
func (d *Dashboard) AttributeHistogram() (stats.Histogram, error) {
	return d.attributeHist.Get()
}

// MassHistogram bins body mass of the filtered view.
func (d *Dashboard) MassHistogram() (stats.Histogram, error) {
	return d.massHist.Get()
}

// Scatter returns body mass against bill depth for the filtered view.
func (d *Dashboard) Scatter() ([]stats.Point, error) {
	return d.scatter.Get()
}

func (d *Dashboard) Base() *table.Table { return d.base }

func (d *Dashboard) GroupColumn() string { return d.groupColumn }

func (d *Dashboard) Selection() *selection.Selection { return d.selection }

// Attribute returns the current attribute histogram column.
func (d *Dashboard) Attribute() string { return d.attribute.Get() }

// SetAttribute changes the attribute histogram column. Unknown names are
// accepted and fail at render time like any missing column.
func (d *Dashboard) SetAttribute(name string) bool { return d.attribute.Set(name) }

// CycleAttribute moves to the next (step 1) or previous (step -1) entry of
// Attributes.
func (d *Dashboard) CycleAttribute(step int) {
	i := slices.Index(Attributes, d.attribute.Get())
	n := len(Attributes)
	d.attribute.Set(Attributes[((i+step)%n+n)%n])
}

func (d *Dashboard) AttributeBins() int { return d.attributeBins.Get() }

// SetAttributeBins sets the attribute histogram bin count, clamped to its
// allowed range.
func (d *Dashboard) SetAttributeBins(n int) bool {
	return d.attributeBins.Set(clamp(n, MinAttributeBins, MaxAttributeBins))
}

func (d *Dashboard) MassBins() int { return d.massBins.Get() }

// SetMassBins sets the mass histogram bin count, clamped to its allowed
// range.
func (d *Dashboard) SetMassBins(n int) bool {
	return d.massBins.Set(clamp(n, MinMassBins, MaxMassBins))
}

// Stats reports cache counters for the shared filtered view.
func (d *Dashboard) Stats() reactive.Stats { return d.filtered.Stats() }

func eq[T comparable](a, b T) bool { return a == b }

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
