// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws loads AWS configuration and downloads datasets stored in S3 or
// an S3-compatible object store.
package aws
