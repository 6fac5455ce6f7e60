// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package table provides the immutable, typed, in-memory table that holds the
// base dataset and every view derived from it.
package table
