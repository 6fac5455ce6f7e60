// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package reactive

import "sync"

// Source is anything a Calc can depend on. Generation must never decrease and
// must increase whenever the observable value changes.
type Source interface {
	Generation() uint64
}

// Signal is a writable input value with a generation counter.
type Signal[T any] struct {
	mu    sync.RWMutex
	value T
	gen   uint64
	equal func(a, b T) bool
}

// NewSignal creates a Signal holding initial. equal decides whether a Set
// actually changes the value; a nil equal treats every Set as a change.
func NewSignal[T any](initial T, equal func(a, b T) bool) *Signal[T] {
	return &Signal[T]{value: initial, equal: equal}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and reports whether it differed from the previous value. The
// generation only moves when it did.
func (s *Signal[T]) Set(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.equal != nil && s.equal(s.value, v) {
		return false
	}
	s.value = v
	s.gen++
	return true
}

// Update applies fn to the current value and stores the result.
func (s *Signal[T]) Update(fn func(T) T) bool {
	return s.Set(fn(s.Get()))
}

func (s *Signal[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}
