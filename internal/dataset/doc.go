// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package dataset loads the base table a dashboard filters. A source is the
// bundled sample, a local CSV or JSON file, or an object in S3.
//
// CSV cells reading NA or empty are missing values. A column is numeric when
// every present cell parses as a number; otherwise every cell is kept as text.
package dataset
