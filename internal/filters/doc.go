// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package filters implements the --filter expression language applied to
// dashboard output. An expression is key, operator and target, e.g.
// island=Biscoe, body_mass_g>4000 or sex!=male. Operators are = ^ ~ < > @ and
// /, each of which may be negated with a leading !.
package filters
