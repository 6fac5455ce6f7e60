// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil keeps downloaded datasets on disk so remote sources are
// fetched once.
package cacheutil
