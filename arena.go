package stackarena

import (
	"fmt"
	"math"
	"unsafe"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// DefaultCapacity is the capacity used by Defaultsettings (64 KiB).
const DefaultCapacity = 1 << 16

// DefaultAlignment is the platform's maximum natural alignment. Arenas
// built with alignment 0 use it.
const DefaultAlignment = int(unsafe.Alignof(maxAlign{}))

// noCopy may be embedded into structs which must not be copied after the
// first use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Arena is a fixed-capacity stack allocator. Regions are handed out from a
// single aligned buffer by bumping a cursor and are reclaimed in reverse
// order, or all at once by rewinding to a Marker. Not goroutine-safe; use
// one Arena per goroutine, see Pool.
//
// An Arena must not be copied after construction.
type Arena struct {
	noCopy noCopy

	buf    []byte // capacity bytes, first byte aligned to align
	cursor int    // offset of the first free byte
	align  int
	peak   int  // high water mark of cursor
	zeroed bool // clear regions before handing them out
}

// Marker is a snapshot of an arena's cursor, see Arena.CurrentMarker.
// The zero Marker is never valid.
type Marker struct {
	owner *Arena
	off   int
}

// Offset returns the number of bytes that were in use when the marker was
// taken.
func (m Marker) Offset() int {
	return m.off
}

// NewArena creates an arena of exactly capacity bytes whose allocations are
// aligned to alignment. If alignment is 0, DefaultAlignment is used.
func NewArena(capacity, alignment int) (*Arena, error) {
	if alignment == 0 {
		alignment = DefaultAlignment
	}
	if err := validate(capacity, alignment); err != nil {
		return nil, err
	}

	// over-allocate so that the usable region can start on an aligned
	// address, like arrow's GoAllocator does for 64-byte alignment.
	raw := make([]byte, capacity+alignment)
	addr := addressOf(raw)
	shift := int(alignUp(addr, uintptr(alignment)) - addr)
	return &Arena{
		buf:   raw[shift : shift+capacity : shift+capacity],
		align: alignment,
	}, nil
}

// MustNewArena is like NewArena but panics on invalid configuration.
func MustNewArena(capacity, alignment int) *Arena {
	a, err := NewArena(capacity, alignment)
	if err != nil {
		panic(err)
	}
	return a
}

func validate(capacity, alignment int) error {
	if !isPowerOfTwo(alignment) {
		return errors.Wrapf(ErrInvalidAlignment, "alignment %d", alignment)
	}
	if capacity <= 0 || capacity > math.MaxInt-alignment {
		return errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}
	return nil
}

// Allocate reserves n bytes and returns them as a slice of length and
// capacity n. The reservation is rounded up to the arena alignment so the
// next allocation starts aligned as well. Allocate returns nil if the
// arena cannot hold the rounded size, leaving the arena unchanged; a zero
// sized request returns an empty, non-nil slice.
func (a *Arena) Allocate(n int) []byte {
	a.panicIfReleased()
	if n < 0 {
		return nil
	}

	free := len(a.buf) - a.cursor
	if n > free || alignUp(n, a.align) > free {
		debugf("stackarena: allocate %d bytes failed, %d of %d in use\n", n, a.cursor, len(a.buf))
		return nil
	}

	off := a.cursor
	a.cursor = off + alignUp(n, a.align)
	if a.cursor > a.peak {
		a.peak = a.cursor
	}
	b := a.buf[off : off+n : off+n]
	if a.zeroed {
		clear(b)
	}
	return b
}

// AllocateAligned is Allocate for callers that need a specific alignment.
// requiredAlignment must be a power of two no greater than the arena
// alignment, otherwise AllocateAligned panics: an arena cannot provide
// alignment finer than what it was built with.
func (a *Arena) AllocateAligned(n, requiredAlignment int) []byte {
	if !isPowerOfTwo(requiredAlignment) || requiredAlignment > a.align {
		panic(fmt.Sprintf("stackarena: alignment %d not supported by arena aligned to %d", requiredAlignment, a.align))
	}
	return a.Allocate(n)
}

// Deallocate gives back b, which must be a slice returned by Allocate. The
// memory is reclaimed only when b is the most recent allocation still in
// use; any other slice, including ones that do not belong to the arena, is
// ignored.
func (a *Arena) Deallocate(b []byte) {
	a.panicIfReleased()
	off, ok := a.offsetOf(b)
	if !ok {
		return
	}
	if off+alignUp(len(b), a.align) == a.cursor {
		a.cursor = off
	}
}

// Resize grows or shrinks b in place. b must be the most recent allocation
// still in use and must not be empty. Resize returns nil, leaving the arena
// unchanged, when b is not on top or the new size does not fit.
func (a *Arena) Resize(b []byte, n int) []byte {
	a.panicIfReleased()
	off, ok := a.offsetOf(b)
	if !ok || n < 0 || len(b) == 0 || off+alignUp(len(b), a.align) != a.cursor {
		return nil
	}
	free := len(a.buf) - off
	if n > free || alignUp(n, a.align) > free {
		return nil
	}

	a.cursor = off + alignUp(n, a.align)
	if a.cursor > a.peak {
		a.peak = a.cursor
	}
	nb := a.buf[off : off+n : off+n]
	if a.zeroed && n > len(b) {
		clear(nb[len(b):])
	}
	return nb
}

// Owns reports whether b points into the arena's buffer. Empty slices are
// never owned.
func (a *Arena) Owns(b []byte) bool {
	if len(b) == 0 || a.buf == nil {
		return false
	}
	off, ok := a.offsetOf(b)
	return ok && off < len(a.buf)
}

// offsetOf returns the position of b's first byte within the buffer.
func (a *Arena) offsetOf(b []byte) (int, bool) {
	base, p := addressOf(a.buf), addressOf(b)
	if p < base || p > base+uintptr(len(a.buf)) {
		return 0, false
	}
	return int(p - base), true
}

// CurrentMarker returns a marker for the current state of the arena.
// Passing it to ResetToMarker releases everything allocated after this
// call.
func (a *Arena) CurrentMarker() Marker {
	return Marker{owner: a, off: a.cursor}
}

// ResetToMarker rewinds the arena to m. The returned error wraps
// ErrInvalidMarker if m was taken from another arena, lies outside the
// buffer or is misaligned; the arena is not modified in that case.
func (a *Arena) ResetToMarker(m Marker) error {
	a.panicIfReleased()

	var err error
	switch {
	case m.owner != a:
		err = errors.Wrap(ErrInvalidMarker, "marker belongs to another arena")
	case m.off < 0 || m.off > len(a.buf):
		err = errors.Wrapf(ErrInvalidMarker, "offset %d outside of [0, %d]", m.off, len(a.buf))
	case !isAligned(m.off, a.align):
		err = errors.Wrapf(ErrInvalidMarker, "offset %d not aligned to %d", m.off, a.align)
	}
	if err != nil {
		warnf("stackarena: reset to marker rejected: %v\n", err)
		return err
	}
	a.cursor = m.off
	return nil
}

// Scope runs fn and then rewinds the arena to where it was before the
// call, even if fn panics. Everything fn allocated from a is reclaimed.
func (a *Arena) Scope(fn func(*Arena) error) error {
	m := a.CurrentMarker()
	defer func() {
		if a.buf != nil {
			a.cursor = m.off
		}
	}()
	return fn(a)
}

// Reset reclaims the whole arena in O(1). Outstanding slices must no
// longer be used.
func (a *Arena) Reset() {
	a.panicIfReleased()
	a.cursor = 0
}

// Release drops the buffer and makes the arena unusable. Any subsequent
// operation, except the metric accessors, panics.
func (a *Arena) Release() {
	if a.buf != nil {
		debugf("stackarena: release arena of %d bytes, peak %d\n", len(a.buf), a.peak)
	}
	a.buf = nil
	a.cursor = 0
}

// Capacity returns the size of the arena in bytes.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Used returns the number of bytes currently allocated, including the
// padding added by alignment.
func (a *Arena) Used() int {
	return a.cursor
}

// Alignment returns the alignment every allocation starts on.
func (a *Arena) Alignment() int {
	return a.align
}

func (a *Arena) String() string {
	return fmt.Sprintf("stackarena{used %s of %s, align %d}",
		humanize.IBytes(uint64(a.Used())), humanize.IBytes(uint64(a.Capacity())), a.align)
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.buf == nil {
		panic("stackarena: use after Release()")
	}
}
