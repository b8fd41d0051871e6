// Package stackarena implements a fixed-capacity stack allocator (LIFO
// memory arena) for Go.
//
// # Overview
//
// An Arena owns one contiguous, aligned block of bytes. Allocation bumps a
// cursor, deallocation moves it back. Only the most recent allocation can be
// given back individually; everything else is reclaimed by rewinding to a
// Marker or by Reset. There is no per-allocation bookkeeping, so every
// operation is O(1). This is useful for:
//
//   - Per-node storage while parsing
//   - Per-frame scratch buffers in simulation loops
//   - Request-scoped temporaries with strictly nested lifetimes
//
// # Basic Usage
//
//	a, err := stackarena.NewArena(64, 8)
//	if err != nil {
//		return err
//	}
//
//	p1 := a.Allocate(10)  // len 10, a.Used() == 16
//	p2 := a.Allocate(60)  // nil: 16 + 64 > 64
//	a.Deallocate(p1)      // a.Used() == 0
//
// Allocation failure is reported with a nil slice and is an ordinary
// outcome; callers typically fall back to a larger arena or to the Go heap.
//
// # Markers
//
//	m := a.CurrentMarker()
//	tmp := a.Allocate(32)
//	...
//	if err := a.ResetToMarker(m); err != nil {
//		// errors.Is(err, stackarena.ErrInvalidMarker)
//	}
//
// A marker is only accepted by the arena that produced it. Scope wraps the
// pattern above around a function.
//
// # Alignment
//
// Every allocation starts on a multiple of the arena alignment and its size
// is rounded up to that alignment, so consecutive allocations never need
// padding gaps. The alignment defaults to the platform's maximum natural
// alignment. Requests for a stricter alignment than the arena was built
// with panic, see AllocateAligned.
//
// # Thread Safety
//
// Arena is not thread-safe. Give every goroutine its own arena; Pool
// recycles arenas across goroutines.
//
// # Important Notes
//
//   - Allocated memory is only valid until it is reclaimed or the arena is
//     released; nothing tracks outstanding slices
//   - Memory is not zeroed unless using Alloc, AllocSliceZeroed or the
//     "zeroed" setting
//   - Values placed in arena memory must not contain Go pointers
//   - An Arena must not be copied
package stackarena
