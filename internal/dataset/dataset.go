// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tidwall/gjson"

	"github.com/staranto/pengdash/internal/aws"
	"github.com/staranto/pengdash/internal/cacheutil"
	"github.com/staranto/pengdash/internal/table"
)

//go:embed penguins.csv
var sample []byte

// ErrEmpty is returned when a dataset has no header or no objects.
var ErrEmpty = errors.New("dataset is empty")

// cacheDir is the cache subdirectory holding downloaded bodies.
var cacheDir = []string{"datasets"}

type options struct {
	getter     aws.ObjectGetter
	awsOptions []aws.Option
	s3Options  []func(*s3v2.Options)
}

// Option customizes how remote datasets are fetched.
type Option func(*options)

// WithObjectGetter supplies the S3 client. When absent a client is built from
// the shell's AWS configuration.
func WithObjectGetter(g aws.ObjectGetter) Option {
	return func(o *options) { o.getter = g }
}

// WithAWSOptions passes profile and region overrides to AWS config loading.
func WithAWSOptions(opts ...aws.Option) Option {
	return func(o *options) { o.awsOptions = append(o.awsOptions, opts...) }
}

// WithS3Options passes client options such as a custom endpoint.
func WithS3Options(opts ...func(*s3v2.Options)) Option {
	return func(o *options) { o.s3Options = append(o.s3Options, opts...) }
}

// Sample returns the bundled Palmer penguins sample.
func Sample() *table.Table {
	t, err := ParseCSV(bytes.NewReader(sample))
	if err != nil {
		// The sample is compiled in; failing to parse it is a build defect.
		panic(fmt.Sprintf("bundled dataset: %v", err))
	}
	return t
}

// Load resolves spec and reads the table it names.
func Load(ctx context.Context, spec string, opts ...Option) (*table.Table, error) {
	src, err := Resolve(spec)
	if err != nil {
		return nil, err
	}

	log.WithField("source", src.String()).Debug("loading dataset")

	body, err := read(ctx, src, opts...)
	if err != nil {
		return nil, err
	}

	var t *table.Table
	switch src.Format {
	case JSON:
		if src.Path != "" {
			if body, err = Drill(body, src.Path); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", src, err)
			}
		}
		t, err = ParseJSON(body)
	default:
		t, err = ParseCSV(bytes.NewReader(body))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src, err)
	}

	log.WithFields(log.Fields{"source": src.String(), "rows": t.Len()}).Debug("loaded dataset")
	return t, nil
}

func read(ctx context.Context, src Source, opts ...Option) ([]byte, error) {
	switch src.Origin {
	case Embedded:
		return sample, nil
	case File:
		b, err := os.ReadFile(src.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		return b, nil
	case S3:
		return readS3(ctx, src.Location, opts...)
	}
	return nil, fmt.Errorf("unknown dataset origin %d", src.Origin)
}

// readS3 serves a fresh cache entry without touching S3. A stale entry is
// revalidated with its ETag and served again when S3 reports it unchanged,
// or when S3 cannot be reached.
func readS3(ctx context.Context, uri string, opts ...Option) ([]byte, error) {
	cached, hit := cacheutil.Read(cacheDir, uri)
	if hit && cached.Meta.Fresh(cacheutil.MaxAge(), time.Now()) {
		log.WithField("path", cached.Path).Debug("dataset cache hit")
		return cached.Data, nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	getter := o.getter
	if getter == nil {
		cfg, err := aws.LoadAWSConfig(ctx, o.awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		getter = aws.NewS3(cfg, o.s3Options...)
	}

	var etag string
	if hit {
		etag = cached.Meta.ETag
	}

	obj, err := aws.FetchObject(ctx, getter, uri, etag)
	if err != nil {
		if hit {
			log.WithError(err).WithField("path", cached.Path).Warn("serving stale cached dataset")
			return cached.Data, nil
		}
		return nil, err
	}

	now := time.Now()
	if obj.NotModified {
		meta := cached.Meta
		meta.Fetched = now
		if err := cacheutil.WriteMeta(cacheDir, uri, meta); err != nil {
			log.WithError(err).Warn("failed to update dataset cache metadata")
		}
		log.WithFields(log.Fields{"path": cached.Path, "etag": etag}).Debug("dataset cache revalidated")
		return cached.Data, nil
	}

	if err := cacheutil.Write(cacheDir, uri, obj.Body); err != nil {
		log.WithError(err).Warn("failed to cache dataset")
	} else if err := cacheutil.WriteMeta(cacheDir, uri, cacheutil.Meta{
		Source:       uri,
		ETag:         obj.ETag,
		LastModified: obj.LastModified,
		Fetched:      now,
		Size:         len(obj.Body),
	}); err != nil {
		log.WithError(err).Warn("failed to write dataset cache metadata")
	}
	return obj.Body, nil
}

// ParseCSV reads a header row followed by records.
func ParseCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	header := records[0]
	cells := make([][]string, len(records)-1)
	missing := make([][]bool, len(records)-1)
	for i, rec := range records[1:] {
		cells[i] = rec
		missing[i] = make([]bool, len(rec))
		for j, c := range rec {
			missing[i][j] = isMissing(c)
		}
	}

	return build(header, func(row, col int) (string, bool) {
		return cells[row][col], missing[row][col]
	}, len(cells))
}

// ParseJSON reads an array of objects. Column order follows the keys of the
// first object; keys first seen later are appended.
func ParseJSON(body []byte) (*table.Table, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, errors.New("expected a json array of objects")
	}

	var header []string
	seen := map[string]bool{}
	objects := root.Array()
	for _, obj := range objects {
		if !obj.IsObject() {
			return nil, fmt.Errorf("expected object, got %s", obj.Type)
		}
		obj.ForEach(func(k, _ gjson.Result) bool {
			if !seen[k.String()] {
				seen[k.String()] = true
				header = append(header, k.String())
			}
			return true
		})
	}
	if len(header) == 0 {
		return nil, ErrEmpty
	}

	return build(header, func(row, col int) (string, bool) {
		v := objects[row].Get(gjson.Escape(header[col]))
		if !v.Exists() || v.Type == gjson.Null {
			return "", true
		}
		if v.Type == gjson.String {
			return v.Str, isMissing(v.Str)
		}
		return v.Raw, false
	}, len(objects))
}

// build infers column kinds and converts cells. cell reports the raw text of
// a cell and whether it is missing.
func build(header []string, cell func(row, col int) (string, bool), n int) (*table.Table, error) {
	schema := make(table.Schema, len(header))
	for j, name := range header {
		kind := table.Number
		for i := 0; i < n; i++ {
			s, null := cell(i, j)
			if null {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil && !errors.Is(err, strconv.ErrRange) {
				kind = table.String
				break
			}
		}
		schema[j] = table.Column{Name: strings.TrimSpace(name), Kind: kind}
	}

	rows := make([]table.Row, n)
	for i := 0; i < n; i++ {
		row := make(table.Row, len(header))
		for j := range header {
			s, null := cell(i, j)
			switch {
			case null:
				row[j] = nil
			case schema[j].Kind == table.Number:
				if f, ok := parseFinite(s); ok {
					row[j] = f
				}
			default:
				row[j] = s
			}
		}
		rows[i] = row
	}

	return table.New(schema, rows)
}

// parseFinite parses a numeric cell. NaN and the infinities load as missing.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "NA"
}
