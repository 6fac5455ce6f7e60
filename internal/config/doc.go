// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package config loads the optional pengdash.yaml file and exposes dotted
// key lookups with defaults.
package config
