// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/pengdash/internal/table"
)

type countingGetter struct {
	body  string
	etag  string
	err   error
	calls int
	// conditional counts requests that carried If-None-Match.
	conditional int
}

type statusError int

func (e statusError) Error() string       { return "status " + strconv.Itoa(int(e)) }
func (e statusError) HTTPStatusCode() int { return int(e) }

func (g *countingGetter) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if in.IfNoneMatch != nil {
		g.conditional++
		if *in.IfNoneMatch == g.etag {
			return nil, statusError(http.StatusNotModified)
		}
	}
	out := &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(g.body))}
	if g.etag != "" {
		out.ETag = &g.etag
	}
	return out, nil
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		origin  Origin
		format  Format
		wantErr bool
	}{
		{name: "empty", spec: "", origin: Embedded, format: CSV},
		{name: "embedded", spec: "Embedded", origin: Embedded, format: CSV},
		{name: "s3 csv", spec: "s3://data/penguins.csv", origin: S3, format: CSV},
		{name: "s3 json", spec: "s3://data/penguins.JSON", origin: S3, format: JSON},
		{name: "local csv", spec: filepath.Join("testdata", "small.csv"), origin: File, format: CSV},
		{name: "local json", spec: filepath.Join("testdata", "small.json"), origin: File, format: JSON},
		{name: "missing file", spec: filepath.Join("testdata", "nope.csv"), wantErr: true},
		{name: "directory", spec: "testdata", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Resolve(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.origin, src.Origin)
			assert.Equal(t, tt.format, src.Format)
		})
	}
}

func TestSample(t *testing.T) {
	tbl := Sample()

	assert.Equal(t, 344, tbl.Len())
	assert.Equal(t,
		[]string{"species", "island", "bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g", "sex", "year"},
		tbl.Schema().Names())

	species, err := tbl.Lookup("species", table.String)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Adelie", "Gentoo", "Chinstrap"}, tbl.Distinct(species))

	for _, name := range []string{"bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g", "year"} {
		_, err := tbl.Lookup(name, table.Number)
		assert.NoError(t, err, name)
	}

	counts := map[string]int{}
	for i := 0; i < tbl.Len(); i++ {
		counts[tbl.String(i, species)]++
	}
	assert.Equal(t, map[string]int{"Adelie": 152, "Gentoo": 124, "Chinstrap": 68}, counts)

	island, _ := tbl.Lookup("island", table.String)
	assert.Equal(t, []string{"Torgersen", "Biscoe", "Dream"}, tbl.Distinct(island))
	year, _ := tbl.Lookup("year", table.Number)
	assert.Equal(t, []string{"2007", "2008", "2009"}, tbl.Distinct(year))

	// One Adelie and one Gentoo bird have no measurements.
	mass, _ := tbl.Lookup("body_mass_g", table.Number)
	var missing []int
	for i := 0; i < tbl.Len(); i++ {
		if tbl.Value(i, mass) == nil {
			missing = append(missing, i)
		}
	}
	assert.Equal(t, []int{3, 271}, missing)

	sex := tbl.ColumnIndex("sex")
	unsexed := 0
	for i := 0; i < tbl.Len(); i++ {
		if tbl.Value(i, sex) == nil {
			unsexed++
		}
	}
	assert.Equal(t, 11, unsexed)
}

func TestParseCSV(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "small.csv"))
	require.NoError(t, err)
	defer f.Close()

	tbl, err := ParseCSV(f)
	require.NoError(t, err)

	want, err := table.New(table.Schema{
		{Name: "species", Kind: table.String},
		{Name: "island", Kind: table.String},
		{Name: "bill_length_mm", Kind: table.Number},
		{Name: "body_mass_g", Kind: table.Number},
	}, []table.Row{
		{"Adelie", "Torgersen", 39.1, 3750.0},
		{"Gentoo", "Biscoe", nil, 5700.0},
		{"Chinstrap", "Dream", 46.5, nil},
	})
	require.NoError(t, err)
	assert.True(t, want.Equal(tbl))
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	f, err := os.Open(filepath.Join("testdata", "ragged.csv"))
	require.NoError(t, err)
	defer f.Close()
	_, err = ParseCSV(f)
	assert.Error(t, err)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("species,body_mass_g\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"species", "body_mass_g"}, tbl.Schema().Names())
}

func TestParseCSV_NonFiniteIsMissing(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"nan", "NaN"},
		{"inf", "Inf"},
		{"negative inf", "-Infinity"},
		{"overflow", "1e400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "species,body_mass_g\nAdelie,3750\nGentoo," + tt.cell + "\n"
			tbl, err := ParseCSV(strings.NewReader(in))
			require.NoError(t, err)

			mass, err := tbl.Lookup("body_mass_g", table.Number)
			require.NoError(t, err, "column stays numeric")
			assert.Nil(t, tbl.Value(1, mass))
			v, ok := tbl.Number(0, mass)
			assert.True(t, ok)
			assert.Equal(t, 3750.0, v)
		})
	}
}

func TestParseJSON_NonFiniteIsMissing(t *testing.T) {
	in := `[{"species":"Adelie","body_mass_g":3750},{"species":"Gentoo","body_mass_g":"NaN"}]`
	tbl, err := ParseJSON([]byte(in))
	require.NoError(t, err)

	mass, err := tbl.Lookup("body_mass_g", table.Number)
	require.NoError(t, err)
	assert.Nil(t, tbl.Value(1, mass))
}

func TestParseJSON(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "small.json"))
	require.NoError(t, err)

	tbl, err := ParseJSON(body)
	require.NoError(t, err)

	want, err := table.New(table.Schema{
		{Name: "species", Kind: table.String},
		{Name: "island", Kind: table.String},
		{Name: "bill_length_mm", Kind: table.Number},
		{Name: "body_mass_g", Kind: table.Number},
	}, []table.Row{
		{"Adelie", "Torgersen", 39.1, 3750.0},
		{"Gentoo", "Biscoe", nil, 5700.0},
		{"Chinstrap", "Dream", 46.5, nil},
	})
	require.NoError(t, err)
	assert.True(t, want.Equal(tbl))
}

func TestParseJSON_MixedColumnIsText(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "mixed.json"))
	require.NoError(t, err)

	tbl, err := ParseJSON(body)
	require.NoError(t, err)

	col, err := tbl.Lookup("tag", table.String)
	require.NoError(t, err)
	assert.Equal(t, "7", tbl.String(0, col))
	assert.Equal(t, "G-12", tbl.String(1, col))
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid", body: `[{"species":`},
		{name: "not array", body: `{"species": "Adelie"}`},
		{name: "not objects", body: `[1, 2]`},
		{name: "empty", body: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	tbl, err := Load(context.Background(), filepath.Join("testdata", "small.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	tbl, err = Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 344, tbl.Len())
}

func TestLoad_S3Cached(t *testing.T) {
	t.Setenv("PENGDASH_CACHE_DIR", t.TempDir())
	t.Setenv("PENGDASH_CACHE", "")
	t.Setenv("PENGDASH_CACHE_MAX_AGE", "1h")

	g := &countingGetter{body: "species,body_mass_g\nAdelie,3750\nGentoo,5700\n"}

	for i := 0; i < 2; i++ {
		tbl, err := Load(context.Background(), "s3://data/penguins.csv", WithObjectGetter(g))
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
	}
	assert.Equal(t, 1, g.calls, "second load should come from the cache")
}

func TestLoad_S3Revalidates(t *testing.T) {
	t.Setenv("PENGDASH_CACHE_DIR", t.TempDir())
	t.Setenv("PENGDASH_CACHE", "")
	t.Setenv("PENGDASH_CACHE_MAX_AGE", "0s")

	g := &countingGetter{body: "species,body_mass_g\nAdelie,3750\nGentoo,5700\n", etag: `"v1"`}
	load := func() *table.Table {
		t.Helper()
		tbl, err := Load(context.Background(), "s3://data/penguins.csv", WithObjectGetter(g))
		require.NoError(t, err)
		return tbl
	}

	assert.Equal(t, 2, load().Len())
	assert.Equal(t, 0, g.conditional, "first load has nothing to revalidate")

	assert.Equal(t, 2, load().Len(), "unchanged object is served from the cache")
	assert.Equal(t, 2, g.calls)
	assert.Equal(t, 1, g.conditional)

	g.body = "species,body_mass_g\nAdelie,3750\nGentoo,5700\nChinstrap,3500\n"
	g.etag = `"v2"`
	assert.Equal(t, 3, load().Len(), "changed object replaces the cache entry")

	g.err = errors.New("connection refused")
	assert.Equal(t, 3, load().Len(), "stale entry is served when s3 is unreachable")
	assert.Equal(t, 4, g.calls)
}

func TestLoad_S3Error(t *testing.T) {
	t.Setenv("PENGDASH_CACHE", "0")

	boom := errors.New("no such bucket")
	_, err := Load(context.Background(), "s3://data/penguins.csv", WithObjectGetter(&countingGetter{err: boom}))
	assert.ErrorIs(t, err, boom)
}
