// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Origin says where a dataset comes from.
type Origin int

const (
	Embedded Origin = iota
	File
	S3
)

// Format is the encoding of a dataset body.
type Format int

const (
	CSV Format = iota
	JSON
)

// Source is a resolved dataset location.
type Source struct {
	Origin   Origin
	Format   Format
	Location string
	// Path is a gjson path to the array of records inside a JSON body, given
	// after a '#' in the spec. Empty means the body is the array.
	Path string
}

// EmbeddedName is the spec that selects the bundled sample.
const EmbeddedName = "embedded"

// Resolve turns a source spec into a Source. A spec could be -
//
//	empty     - the bundled sample.
//	embedded  - the bundled sample.
//	s3://b/k  - an object in bucket b.
//	path      - a local file that must exist.
//
// The format follows the extension, with .json meaning JSON and anything
// else CSV. A JSON spec may end in #path to drill into the document, as in
// penguins.json#data.rows.
func Resolve(spec string) (Source, error) {
	spec = strings.TrimSpace(spec)

	var path string
	if i := strings.LastIndex(spec, "#"); i > 0 && formatOf(spec[:i]) == JSON {
		spec, path = spec[:i], spec[i+1:]
	}

	if spec == "" || strings.EqualFold(spec, EmbeddedName) {
		return Source{Origin: Embedded, Format: CSV, Location: EmbeddedName}, nil
	}

	if strings.HasPrefix(strings.ToLower(spec), "s3://") {
		return Source{Origin: S3, Format: formatOf(spec), Location: spec, Path: path}, nil
	}

	info, err := os.Stat(spec)
	if err != nil {
		return Source{}, fmt.Errorf("failed to find dataset %s: %w", spec, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("dataset %s is a directory", spec)
	}

	return Source{Origin: File, Format: formatOf(spec), Location: spec, Path: path}, nil
}

func (s Source) String() string {
	if s.Path != "" {
		return s.Location + "#" + s.Path
	}
	return s.Location
}

func formatOf(location string) Format {
	if strings.EqualFold(filepath.Ext(location), ".json") {
		return JSON
	}
	return CSV
}
