// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package dashboard wires the base dataset, the user inputs and the shared
// filtered view that every display output reads through FilteredData.
package dashboard
