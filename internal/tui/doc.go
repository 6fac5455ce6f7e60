// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package tui is the interactive dashboard. It is a bubbletea program whose
// Update loop is the only place the Dashboard inputs change, so every view it
// renders reads the same cached filtered data.
package tui
