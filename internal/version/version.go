// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version holds the build version, set with
// -ldflags "-X github.com/staranto/pengdash/internal/version.Version=v1.2.3".
package version

var Version = "dev"
