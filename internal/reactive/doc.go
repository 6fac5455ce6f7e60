// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package reactive provides explicit, generation based dependency tracking.
//
// A Signal is a writable input. Every value changing Set bumps its
// generation. A Calc is a derived value computed from one or more Sources. It
// remembers the generations it was computed against and recomputes only when
// one of them has moved on, so any number of readers within the same input
// generation share a single computation.
//
//	sel := reactive.NewSignal([]string{"Adelie"}, slices.Equal[[]string])
//	filtered := reactive.NewCalc(func() (*table.Table, error) {
//	    return filter(base, sel.Get()), nil
//	}, sel)
//
//	t, err := filtered.Get() // computes
//	t, err = filtered.Get()  // cached
//	sel.Set([]string{"Gentoo"})
//	t, err = filtered.Get()  // recomputes once
package reactive
