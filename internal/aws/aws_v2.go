// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotS3URI is returned when a location does not use the s3:// scheme or
// lacks a bucket or key.
var ErrNotS3URI = errors.New("not an s3 uri")

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithPathStyle forces path-style addressing, which S3-compatible stores such
// as MinIO require.
func WithPathStyle() func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.UsePathStyle = true
	}
}

// WithBaseEndpoint points the client at an alternate S3-compatible endpoint.
func WithBaseEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = awsv2.String(endpoint)
		}
	}
}

// ObjectGetter is the slice of the S3 API needed to download a dataset.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// ParseURI splits s3://bucket/key into its bucket and key.
func ParseURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrNotS3URI, uri)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNotS3URI, uri)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNotS3URI, uri)
	}
	return u.Host, key, nil
}

// Object is a downloaded dataset body with the validators S3 returned.
type Object struct {
	Body         []byte
	ETag         string
	LastModified time.Time
	// NotModified is set when a conditional get found the object unchanged.
	// Body is empty in that case.
	NotModified bool
}

// Fetch downloads the object named by an s3:// uri.
func Fetch(ctx context.Context, client ObjectGetter, uri string) ([]byte, error) {
	obj, err := FetchObject(ctx, client, uri, "")
	if err != nil {
		return nil, err
	}
	return obj.Body, nil
}

// FetchObject downloads the object named by an s3:// uri. A non-empty etag
// makes the request conditional on the object having changed.
func FetchObject(ctx context.Context, client ObjectGetter, uri, etag string) (Object, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return Object{}, err
	}

	log.WithFields(log.Fields{"bucket": bucket, "key": key, "etag": etag}).Debug("fetching object")

	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	}
	if etag != "" {
		in.IfNoneMatch = awsv2.String(etag)
	}

	out, err := client.GetObject(ctx, in)
	if err != nil {
		if etag != "" && notModified(err) {
			return Object{ETag: etag, NotModified: true}, nil
		}
		return Object{}, fmt.Errorf("failed to get %s: %w", uri, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Object{}, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	return Object{
		Body:         body,
		ETag:         awsv2.ToString(out.ETag),
		LastModified: awsv2.ToTime(out.LastModified),
	}, nil
}

// notModified reports whether err carries an HTTP 304 from S3.
func notModified(err error) bool {
	var re interface{ HTTPStatusCode() int }
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotModified
}
