// Package arena provides per-parse-session bulk memory ownership. One Arena is
// the sole allocation authority for a single parse: every AST node lives in a
// typed pool chained to it, and releasing the arena invalidates all of them at
// once. Independent arenas share nothing and may be used from different
// goroutines.
package arena

import "errors"

// ErrReleased is reported when an arena is used after Release. Allocating from
// a released arena is an API-contract violation, not a recoverable parse
// condition.
var ErrReleased = errors.New("arena: use after release")

const chunkSize = 64

// Arena anchors the lifetime of everything allocated for one parse session.
// The zero value is not usable; call New.
type Arena struct {
	released bool
	pools    []resetter
}

type resetter interface {
	reset()
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}

// Release drops every pool chained to the arena in one step. The nodes become
// garbage together, and any later allocation through the arena panics with
// ErrReleased.
func (a *Arena) Release() {
	a.released = true
	for _, p := range a.pools {
		p.reset()
	}
	a.pools = nil
}

// Pool allocates values of one type out of fixed-size chunks owned by an
// Arena. Pointers handed out stay valid until the arena is released.
type Pool[T any] struct {
	arena  *Arena
	chunks [][]T
}

// NewPool creates a pool for T chained to a's lifetime.
func NewPool[T any](a *Arena) *Pool[T] {
	p := &Pool[T]{arena: a}
	a.pools = append(a.pools, p)
	return p
}

// New copies v into the pool and returns its stable address.
func (p *Pool[T]) New(v T) *T {
	if p.arena.released {
		panic(ErrReleased)
	}
	n := len(p.chunks)
	if n == 0 || len(p.chunks[n-1]) == cap(p.chunks[n-1]) {
		p.chunks = append(p.chunks, make([]T, 0, chunkSize))
		n++
	}
	chunk := append(p.chunks[n-1], v)
	p.chunks[n-1] = chunk
	return &chunk[len(chunk)-1]
}

// Len returns the number of live allocations in the pool.
func (p *Pool[T]) Len() int {
	total := 0
	for _, c := range p.chunks {
		total += len(c)
	}
	return total
}

func (p *Pool[T]) reset() {
	p.chunks = nil
}
