// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrNoPath is returned when a drill path matches nothing.
var ErrNoPath = errors.New("path not found")

// Drill returns the raw JSON found at a gjson path inside body, for example
// "data.rows" or "pages.0.rows".
func Drill(body []byte, path string) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	if path == "" {
		return body, nil
	}

	r := gjson.GetBytes(body, path)
	if !r.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNoPath, path)
	}
	return []byte(r.Raw), nil
}
