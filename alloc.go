package stackarena

import (
	"math"
	"unsafe"
)

// The helpers below place values of type T in arena memory. The garbage
// collector does not scan arena memory, so T must not contain pointers,
// slices, strings, maps, channels, funcs or interfaces.

// Alloc returns a pointer to a zeroed T stored inside the arena, or nil if
// the arena is exhausted. It panics if T needs a stricter alignment than
// the arena provides.
func Alloc[T any](a *Arena) *T {
	b := allocFor[T](a, 1)
	if b == nil {
		return nil
	}
	clear(b)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AllocUninitialized is like Alloc but does not zero the memory, unless
// the arena was configured to zero every allocation.
func AllocUninitialized[T any](a *Arena) *T {
	b := allocFor[T](a, 1)
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized. Returns nil if n <= 0 or if the
// arena is exhausted.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	b := allocFor[T](a, n)
	if b == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// AllocSliceZeroed is like AllocSlice with zeroed elements.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	s := AllocSlice[T](a, n)
	clear(s)
	return s
}

// Free gives back a value obtained from Alloc. As with Deallocate, the
// memory is reclaimed only if p is the most recent allocation.
func Free[T any](a *Arena, p *T) {
	if p == nil {
		return
	}
	a.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p)))
}

// FreeSlice gives back a slice obtained from AllocSlice.
func FreeSlice[T any](a *Arena, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	n := len(s) * int(unsafe.Sizeof(zero))
	a.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n))
}

// allocFor reserves room for n values of T.
func allocFor[T any](a *Arena, n int) []byte {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > 0 && n > math.MaxInt/size {
		return nil
	}
	return a.AllocateAligned(size*n, int(unsafe.Alignof(zero)))
}
