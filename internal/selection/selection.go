// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/pengdash/internal/reactive"
)

// Set is an immutable, sorted, duplicate free set of group values.
type Set struct {
	values []string
}

// NewSet builds a Set from values. Blank entries are dropped and surrounding
// whitespace is trimmed.
func NewSet(values ...string) Set {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	slices.Sort(out)
	return Set{values: slices.Compact(out)}
}

// Parse builds a Set from comma separated specs, as given on the command line
// or in the config file. Each element of specs may itself hold a list.
func Parse(specs ...string) Set {
	var values []string
	for _, s := range specs {
		values = append(values, strings.Split(s, ",")...)
	}
	return NewSet(values...)
}

func (s Set) Contains(v string) bool {
	_, found := slices.BinarySearch(s.values, v)
	return found
}

func (s Set) Len() int { return len(s.values) }

func (s Set) IsEmpty() bool { return len(s.values) == 0 }

// Values returns a copy of the members in sorted order.
func (s Set) Values() []string { return slices.Clone(s.values) }

// With returns a set that also holds v.
func (s Set) With(v string) Set {
	return NewSet(append(s.Values(), v)...)
}

// Without returns a set that no longer holds v.
func (s Set) Without(v string) Set {
	return NewSet(slices.DeleteFunc(s.Values(), func(x string) bool { return x == v })...)
}

// Toggle adds v when absent and removes it when present.
func (s Set) Toggle(v string) Set {
	if s.Contains(v) {
		return s.Without(v)
	}
	return s.With(v)
}

func (s Set) Equal(o Set) bool { return slices.Equal(s.values, o.values) }

func (s Set) String() string { return strings.Join(s.values, ",") }

// Selection is the user controlled set of chosen groups. It is a
// reactive.Signal, so a filtered view can depend on it directly.
type Selection struct {
	*reactive.Signal[Set]
	groups []string
}

// New creates a Selection over the known groups, starting at initial.
// Members of initial that are not known groups are kept, since an unknown
// group simply matches nothing, but they are logged.
func New(groups []string, initial Set) *Selection {
	s := &Selection{
		Signal: reactive.NewSignal(initial, Set.Equal),
		groups: slices.Clone(groups),
	}
	s.warnUnknown(initial)
	return s
}

// Groups returns the fixed enumeration of groups in display order.
func (s *Selection) Groups() []string { return slices.Clone(s.groups) }

// Replace sets the selection to the given values.
func (s *Selection) Replace(values ...string) bool {
	next := NewSet(values...)
	s.warnUnknown(next)
	return s.Set(next)
}

// Toggle flips membership of group.
func (s *Selection) Toggle(group string) bool {
	return s.Update(func(cur Set) Set { return cur.Toggle(group) })
}

// All selects every known group.
func (s *Selection) All() bool { return s.Replace(s.groups...) }

// None clears the selection.
func (s *Selection) None() bool { return s.Set(NewSet()) }

func (s *Selection) warnUnknown(set Set) {
	for _, v := range set.values {
		if !slices.Contains(s.groups, v) {
			log.WithField("group", v).Warn("selected group is not a known group")
		}
	}
}
