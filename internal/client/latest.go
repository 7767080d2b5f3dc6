package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned to a fetch that a newer one replaced.
var ErrSuperseded = errors.New("superseded by a newer request")

// Latest serializes overlapping fetches of one resource with last-write-wins
// semantics. Starting a fetch cancels the one in flight, and a result that
// arrives after a newer fetch started is discarded.
type Latest[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	value  T
	ok     bool
}

// Fetch runs fn under a fresh generation.
func (l *Latest[T]) Fetch(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	v, err := fn(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if gen != l.gen {
		return zero, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		return zero, err
	}
	l.value, l.ok = v, true
	return v, nil
}

// Value returns the last published result.
func (l *Latest[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.ok
}

// Registry runs last-write-wins fetches per key, e.g. per dashboard session.
// A key's entry exists only while a fetch for it is in flight.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*registryEntry[T]
}

type registryEntry[T any] struct {
	latest Latest[T]
	refs   int
}

// Fetch runs fn through the Latest for key. Overlapping fetches on one key
// supersede each other; fetches on different keys are independent.
func (r *Registry[T]) Fetch(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	r.mu.Lock()
	if r.entries == nil {
		r.entries = map[string]*registryEntry[T]{}
	}
	e, ok := r.entries[key]
	if !ok {
		e = &registryEntry[T]{}
		r.entries[key] = e
	}
	e.refs++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(r.entries, key)
		}
		r.mu.Unlock()
	}()

	return e.latest.Fetch(ctx, fn)
}

// Len reports how many keys have a fetch in flight.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
