// Package arrowalloc lets Apache Arrow builders and arrays allocate their
// buffers from a stackarena.Arena.
package arrowalloc

import (
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/pavanmanishd/stackarena"
)

// Allocator implements memory.Allocator on top of an arena. Requests the
// arena cannot hold are served by a fallback allocator. Like the arena it
// wraps, Allocator is not safe for concurrent use.
type Allocator struct {
	arena    *stackarena.Arena
	fallback memory.Allocator
	stats    Stats
}

// Stats counts where allocations were served from.
type Stats struct {
	Arena    int64 // allocations served by the arena
	Fallback int64 // allocations served by the fallback allocator
	InPlace  int64 // reallocations resolved without copying
}

var _ memory.Allocator = (*Allocator)(nil)

// NewAllocator returns an allocator over a. If fallback is nil,
// memory.DefaultAllocator is used.
func NewAllocator(a *stackarena.Arena, fallback memory.Allocator) *Allocator {
	if fallback == nil {
		fallback = memory.DefaultAllocator
	}
	return &Allocator{arena: a, fallback: fallback}
}

func (m *Allocator) Allocate(size int) []byte {
	if b := m.arena.Allocate(size); b != nil {
		m.stats.Arena++
		return b
	}
	m.stats.Fallback++
	return m.fallback.Allocate(size)
}

func (m *Allocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}
	if len(b) == 0 {
		return m.Allocate(size)
	}
	if !m.arena.Owns(b) {
		return m.fallback.Reallocate(size, b)
	}

	if nb := m.arena.Resize(b, size); nb != nil {
		m.stats.InPlace++
		return nb
	}
	out := m.Allocate(size)
	copy(out, b)
	m.arena.Deallocate(b)
	return out
}

// Free gives arena memory back to the arena, which only reclaims it when
// it is the most recent allocation, and everything else to the fallback.
func (m *Allocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	if m.arena.Owns(b) {
		m.arena.Deallocate(b)
		return
	}
	m.fallback.Free(b)
}

// Stats returns allocation counters.
func (m *Allocator) Stats() Stats {
	return m.stats
}
