// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package selection holds the Filter Selection: the set of categorical groups
// the user has currently chosen.
package selection
