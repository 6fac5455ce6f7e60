// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/pengdash/internal/config"
)

func TestMangleArguments(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("testdata", "pengdash.yaml"))
	require.NoError(t, err)
	t.Setenv("PENGDASH_CFG", path)
	_, err = config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted after command",
			args: []string{"pengdash", "show", "--species", "Gentoo"},
			want: []string{"pengdash", "show", "--color", "-o", "json", "--species", "Gentoo"},
		},
		{
			name: "named set replaces defaults",
			args: []string{"pengdash", "show", "--species", "Gentoo", "@heavy"},
			want: []string{"pengdash", "show", "--species", "Gentoo", "--filter", "body_mass_g>5000", "--sort", "-body_mass_g"},
		},
		{
			name: "unknown set is dropped",
			args: []string{"pengdash", "show", "@nope"},
			want: []string{"pengdash", "show"},
		},
		{
			name: "no sets for command",
			args: []string{"pengdash", "schema"},
			want: []string{"pengdash", "schema"},
		},
		{
			name: "help short circuits",
			args: []string{"pengdash", "show", "--species", "Gentoo", "-h"},
			want: []string{"pengdash", "show", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}
