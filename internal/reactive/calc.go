// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package reactive

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Stats is a snapshot of a Calc's counters.
type Stats struct {
	// Recomputes counts calls to the compute function, successful or not.
	Recomputes uint64
	// Hits counts reads served from the cache.
	Hits uint64
	// Errors counts failed computations.
	Errors uint64
}

// Calc is a lazily computed value derived from a fixed set of Sources.
//
// A Calc is clean while every dependency still reports the generation seen at
// the last successful computation and dirty otherwise. Get moves it from
// dirty to clean; any dependency change moves it back. Failed computations
// are not cached.
type Calc[T any] struct {
	mu      sync.Mutex
	compute func() (T, error)
	deps    []Source

	value  T
	cached bool
	seen   []uint64
	stats  Stats

	// epoch counts Invalidate calls so downstream Calcs see them as changes.
	epoch atomic.Uint64
}

// NewCalc creates a Calc over deps. Nothing is computed until the first Get.
func NewCalc[T any](compute func() (T, error), deps ...Source) *Calc[T] {
	return &Calc[T]{
		compute: compute,
		deps:    deps,
	}
}

// Get returns the cached value when no dependency changed since it was
// computed, and recomputes it otherwise.
func (c *Calc[T]) Get() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Generations are captured before computing so a write that lands during
	// the computation leaves the result dirty.
	gens := c.generations()
	if c.cached && slices.Equal(gens, c.seen) {
		c.stats.Hits++
		return c.value, nil
	}

	c.stats.Recomputes++
	v, err := c.compute()
	if err != nil {
		c.stats.Errors++
		c.cached = false
		var zero T
		c.value = zero
		return zero, err
	}

	c.value = v
	c.seen = gens
	c.cached = true
	return v, nil
}

// Peek returns the cached value without computing. ok is false when there is
// no cached value or it is stale.
func (c *Calc[T]) Peek() (value T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached || !slices.Equal(c.generations(), c.seen) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// IsCached reports whether the next Get would be served from the cache.
func (c *Calc[T]) IsCached() bool {
	_, ok := c.Peek()
	return ok
}

// Invalidate drops the cached value and dirties every Calc that depends on
// this one.
func (c *Calc[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.cached = false
	c.seen = nil
	c.epoch.Add(1)
}

// Generation lets a Calc act as a Source for other Calcs. It is the sum of
// the dependency generations plus the number of Invalidate calls, which
// never decreases and increases whenever a dependency changes or the Calc
// is invalidated.
func (c *Calc[T]) Generation() uint64 {
	sum := c.epoch.Load()
	for _, d := range c.deps {
		sum += d.Generation()
	}
	return sum
}

func (c *Calc[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Calc[T]) generations() []uint64 {
	gens := make([]uint64, len(c.deps))
	for i, d := range c.deps {
		gens[i] = d.Generation()
	}
	return gens
}
