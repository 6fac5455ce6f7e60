// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package stats computes the histogram bins and scatter points the views
// draw from a filtered table.
package stats
