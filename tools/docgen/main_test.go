// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# pengdash show\n\n" +
	"## Short description\n\n" +
	"Render the penguin dashboard views to stdout.\n\n" +
	"## Quick examples\n\n" +
	"```sh\n" +
	"# Charts for two species\n" +
	"pengdash show --species Adelie,Gentoo   --view hist\n" +
	"pengdash show -o json\n" +
	"```\n"

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(sampleDoc)
	assert.Equal(t, "pengdash show", title)
	assert.Equal(t, "Render the penguin dashboard views to stdout.", short)

	title, short = extractTitleAndShortDesc("# pengdash tui\n")
	assert.Equal(t, "pengdash tui", title)
	assert.Equal(t, "pengdash tui.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	exs := extractQuickExamples(sampleDoc)
	require.Len(t, exs, 2)
	assert.Equal(t, example{Desc: "Charts for two species", Cmd: "pengdash show --species Adelie,Gentoo   --view hist"}, exs[0])
	assert.Equal(t, "Example", exs[1].Desc)

	assert.Nil(t, extractQuickExamples("# nothing here"))
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("show", "pengdash show", "Render views.", extractQuickExamples(sampleDoc))
	assert.Contains(t, got, "# pengdash-show\n")
	assert.Contains(t, got, "> Render views.\n")
	assert.Contains(t, got, "`pengdash show --species Adelie,Gentoo --view hist`")

	got = buildTLDR("tui", "", "", nil)
	assert.Contains(t, got, "`pengdash tui --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "commands"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "commands", "show.md"), []byte(sampleDoc), 0o644))

	n, err := generate(settings{root: root, onlyIfChanged: true})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.FileExists(t, filepath.Join(root, "docs", "man", "share", "man1", "pengdash-show.1"))
	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "pengdash-show.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "pengdash-show")

	_, err = generate(settings{root: t.TempDir()})
	assert.Error(t, err)
}
