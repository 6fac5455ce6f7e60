// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrill(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "empty path is the body",
			json: `[{"species": "Adelie"}]`,
			want: `[{"species": "Adelie"}]`,
		},
		{
			name: "simple key",
			json: `{"rows": [{"species": "Adelie"}]}`,
			path: "rows",
			want: `[{"species": "Adelie"}]`,
		},
		{
			name: "nested key",
			json: `{"data": {"penguins": {"rows": []}}}`,
			path: "data.penguins.rows",
			want: `[]`,
		},
		{
			name: "array index",
			json: `{"pages": [{"rows": [1]}, {"rows": [2]}]}`,
			path: "pages.1.rows",
			want: `[2]`,
		},
		{
			name: "escaped dot",
			json: `{"palmer.lter": [{"species": "Gentoo"}]}`,
			path: `palmer\.lter`,
			want: `[{"species": "Gentoo"}]`,
		},
		{
			name:    "missing key",
			json:    `{"rows": []}`,
			path:    "data",
			wantErr: ErrNoPath,
		},
		{
			name:    "missing index",
			json:    `{"pages": []}`,
			path:    "pages.3",
			wantErr: ErrNoPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Drill([]byte(tt.json), tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDrill_InvalidJSON(t *testing.T) {
	_, err := Drill([]byte(`{"rows": [`), "rows")
	assert.Error(t, err)
}

func TestResolve_DrillPath(t *testing.T) {
	spec := filepath.Join("testdata", "nested.json") + "#data.rows"
	src, err := Resolve(spec)
	require.NoError(t, err)
	assert.Equal(t, JSON, src.Format)
	assert.Equal(t, "data.rows", src.Path)
	assert.Equal(t, spec, src.String())

	// CSV specs keep '#' as part of the name.
	_, err = Resolve(filepath.Join("testdata", "small.csv") + "#x")
	assert.Error(t, err)
}

func TestLoad_DrillPath(t *testing.T) {
	tbl, err := Load(context.Background(), filepath.Join("testdata", "nested.json")+"#data.rows")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"species", "body_mass_g"}, tbl.Schema().Names())

	_, err = Load(context.Background(), filepath.Join("testdata", "nested.json")+"#data.missing")
	assert.ErrorIs(t, err, ErrNoPath)
}

func BenchmarkDrill(b *testing.B) {
	body := []byte(`{"data": {"rows": [{"species": "Adelie", "body_mass_g": 3750}]}}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Drill(body, "data.rows")
	}
}
