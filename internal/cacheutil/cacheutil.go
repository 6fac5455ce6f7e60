// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// metaSuffix names the sidecar holding a dataset entry's Meta.
const metaSuffix = ".meta.yaml"

// Entry represents a cached dataset on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	// Meta is zero when the entry has no sidecar.
	Meta Meta
}

// Meta records where a cached dataset came from and the validators needed to
// ask the origin whether it changed.
type Meta struct {
	Source       string    `yaml:"source"`
	ETag         string    `yaml:"etag,omitempty"`
	LastModified time.Time `yaml:"last_modified,omitempty"`
	Fetched      time.Time `yaml:"fetched"`
	Size         int       `yaml:"size"`
}

// Fresh reports whether the entry was fetched or revalidated within maxAge
// of now. Entries without a fetch time are never fresh.
func (m Meta) Fresh(maxAge time.Duration, now time.Time) bool {
	return !m.Fetched.IsZero() && now.Sub(m.Fetched) < maxAge
}

// settings are the cache knobs read from the environment. Enabled is a
// string so that both "0" and "false" disable the cache.
type settings struct {
	Dir     string        `env:"PENGDASH_CACHE_DIR"`
	Enabled string        `env:"PENGDASH_CACHE"`
	MaxAge  time.Duration `env:"PENGDASH_CACHE_MAX_AGE" envDefault:"24h"`
}

func loadSettings() settings {
	var s settings
	if err := env.Parse(&s); err != nil {
		log.WithError(err).Warn("failed to parse cache settings")
	}
	return s
}

// Dir resolves the base cache directory.
// Precedence:
//  1. PENGDASH_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/pengdash
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c := loadSettings().Dir; c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "pengdash"), true
	}
	return "", false
}

// Enabled returns true unless PENGDASH_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled := loadSettings().Enabled
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// MaxAge is how long a cached dataset is served without revalidating it
// against its origin. Zero revalidates on every load.
func MaxAge() time.Duration {
	return loadSettings().MaxAge
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EntryPath returns the absolute path where a cache entry would live given
// subdirectory components and the clear-text key. It also returns true if a
// file currently exists at that path.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	encoded := encodeKey(clearKey)
	p := filepath.Join(append([]string{base}, append(subdirs, encoded)...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return nil
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Read attempts to read a cached entry. Dataset bodies are raw bytes, so
// only a trailing newline difference is trimmed.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	b = bytes.TrimRight(b, "\n")
	e := &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
	}
	if raw, err := os.ReadFile(p + metaSuffix); err == nil {
		if err := yaml.Unmarshal(raw, &e.Meta); err != nil {
			log.WithError(err).Warnf("ignoring unreadable cache metadata %s", p+metaSuffix)
			e.Meta = Meta{}
		}
	}
	return e, true
}

// Write stores data for the given key beneath subdirs. Creates directories as needed.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}
	encoded := encodeKey(clearKey)
	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encoded)
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// WriteMeta stores m beside the entry for clearKey and refreshes the entry's
// modification time so Purge ages it from the last revalidation.
func WriteMeta(subdirs []string, clearKey string, m Meta) error {
	if !Enabled() {
		return nil
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil // nothing cached to describe.
	}
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode cache metadata: %w", err)
	}
	if err := os.WriteFile(p+metaSuffix, raw, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write cache metadata: %w", err)
	}
	if !m.Fetched.IsZero() {
		_ = os.Chtimes(p, m.Fetched, m.Fetched)
	}
	return nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
