// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders dashboard views as text tables, grids, histograms
// and scatterplots, or emits the underlying records as JSON or YAML.
package output
