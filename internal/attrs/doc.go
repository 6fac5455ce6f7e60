// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package attrs parses the --attrs flag, which picks, renames and formats the
// columns a command prints.
package attrs
