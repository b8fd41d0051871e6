package stackarena

import (
	"sync"
	"sync/atomic"
)

// Pool recycles arenas of one shape so that concurrent goroutines each own
// a distinct Arena instead of sharing one behind a lock. Pool is safe for
// concurrent use; the arenas it hands out are not.
type Pool struct {
	capacity  int
	alignment int
	pool      sync.Pool

	created atomic.Int64
	dropped atomic.Int64
}

// NewPool creates a pool of arenas with the given capacity and alignment.
// If alignment is 0, DefaultAlignment is used.
func NewPool(capacity, alignment int) (*Pool, error) {
	if alignment == 0 {
		alignment = DefaultAlignment
	}
	if err := validate(capacity, alignment); err != nil {
		return nil, err
	}
	p := &Pool{capacity: capacity, alignment: alignment}
	p.pool.New = func() any {
		p.created.Add(1)
		return MustNewArena(capacity, alignment)
	}
	infof("stackarena: pool of %d byte arenas, alignment %d\n", capacity, alignment)
	return p, nil
}

// Get returns an empty arena owned by the caller until it is handed back
// with Put.
func (p *Pool) Get() *Arena {
	return p.pool.Get().(*Arena)
}

// Put resets a and makes it available to other callers. Arenas of a
// different shape and released arenas are dropped.
func (p *Pool) Put(a *Arena) {
	if a == nil {
		return
	}
	if a.buf == nil || a.Capacity() != p.capacity || a.align != p.alignment {
		p.dropped.Add(1)
		return
	}
	a.Reset()
	p.pool.Put(a)
}

// Do runs fn with an arena from the pool and returns the arena afterwards.
func (p *Pool) Do(fn func(*Arena) error) error {
	a := p.Get()
	defer p.Put(a)
	return fn(a)
}

// Created returns the number of arenas the pool had to allocate.
func (p *Pool) Created() int64 {
	return p.created.Load()
}

// Dropped returns the number of arenas rejected by Put.
func (p *Pool) Dropped() int64 {
	return p.dropped.Load()
}
