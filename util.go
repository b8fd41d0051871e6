package stackarena

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// maxAlign has the strictest alignment of the platform's scalar types.
type maxAlign struct {
	_ complex128
	_ uint64
	_ uintptr
	_ unsafe.Pointer
}

func isPowerOfTwo[T constraints.Integer](v T) bool {
	return v > 0 && v&(v-1) == 0
}

// alignUp rounds v up to the next multiple of align, which must be a
// power of two.
func alignUp[T constraints.Integer](v, align T) T {
	return (v + align - 1) &^ (align - 1)
}

func isAligned[T constraints.Integer](v, align T) bool {
	return v&(align-1) == 0
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
