package stackarena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

func TestAlloc(t *testing.T) {
	a := MustNewArena(1024, 0)

	// Test basic allocation
	ptr := Alloc[int](a)
	if ptr == nil {
		t.Fatal("Alloc[int] returned nil")
	}
	if *ptr != 0 {
		t.Errorf("Alloc[int] value = %d, want 0 (zeroed)", *ptr)
	}

	// Test struct allocation
	s := Alloc[testStruct](a)
	if s == nil {
		t.Fatal("Alloc[testStruct] returned nil")
	}
	if s.a != 0 || s.b != 0 || s.c != 0 || s.d != 0 {
		t.Errorf("Alloc[testStruct] not properly zeroed: %+v", *s)
	}
	if uintptr(unsafe.Pointer(s))%unsafe.Alignof(*s) != 0 {
		t.Errorf("Alloc[testStruct] misaligned at %p", s)
	}

	// Verify we can write to allocated memory
	*ptr = 42
	s.a = 100
	if *ptr != 42 || s.a != 100 {
		t.Error("Could not write to allocated memory")
	}
}

func TestAllocZeroesReusedMemory(t *testing.T) {
	a := MustNewArena(64, 8)

	p := AllocUninitialized[int64](a)
	require.NotNil(t, p)
	*p = -1
	Free(a, p)
	require.Equal(t, 0, a.Used())

	q := Alloc[int64](a)
	require.NotNil(t, q)
	assert.Equal(t, unsafe.Pointer(p), unsafe.Pointer(q))
	assert.Equal(t, int64(0), *q)
}

func TestAllocExhausted(t *testing.T) {
	a := MustNewArena(16, 8)

	assert.NotNil(t, Alloc[int64](a))
	assert.NotNil(t, Alloc[int64](a))
	assert.Nil(t, Alloc[int64](a))
	assert.Nil(t, AllocUninitialized[int64](a))
	assert.Nil(t, AllocSlice[byte](a, 1))
	assert.Equal(t, 16, a.Used())
}

func TestAllocAlignmentContract(t *testing.T) {
	a := MustNewArena(64, 4)

	assert.NotNil(t, Alloc[int32](a))
	assert.Panics(t, func() { Alloc[int64](a) })
	assert.Panics(t, func() { AllocSlice[float64](a, 2) })
}

func TestAllocSlice(t *testing.T) {
	a := MustNewArena(1024, 0)

	// Test normal slice allocation
	slice := AllocSlice[int](a, 10)
	if len(slice) != 10 || cap(slice) != 10 {
		t.Errorf("AllocSlice[int](10) len/cap = %d/%d, want 10/10", len(slice), cap(slice))
	}
	for i := range slice {
		slice[i] = i * 2
	}
	if slice[9] != 18 {
		t.Errorf("slice[9] = %d, want 18", slice[9])
	}

	// Test zero and negative lengths
	if s := AllocSlice[int](a, 0); s != nil {
		t.Errorf("AllocSlice[int](0) = %v, want nil", s)
	}
	if s := AllocSlice[int](a, -1); s != nil {
		t.Errorf("AllocSlice[int](-1) = %v, want nil", s)
	}

	// overflow of n * sizeof(T)
	if s := AllocSlice[int64](a, int(^uint(0)>>1)); s != nil {
		t.Error("AllocSlice with overflowing length should return nil")
	}
}

func TestAllocSliceZeroed(t *testing.T) {
	a := MustNewArena(256, 8)

	dirty := AllocSlice[byte](a, 64)
	for i := range dirty {
		dirty[i] = 0xFF
	}
	FreeSlice(a, dirty)
	require.Equal(t, 0, a.Used())

	clean := AllocSliceZeroed[uint32](a, 16)
	require.Len(t, clean, 16)
	for i, v := range clean {
		if v != 0 {
			t.Fatalf("clean[%d] = %#x, want 0", i, v)
		}
	}
	assert.Nil(t, AllocSliceZeroed[uint32](a, 1000))
}

func TestFreeLIFO(t *testing.T) {
	a := MustNewArena(256, 8)

	p1 := Alloc[testStruct](a)
	s := AllocSlice[int16](a, 5)
	p2 := Alloc[int8](a)
	require.Equal(t, 16+16+8, a.Used())

	Free(a, p1)
	assert.Equal(t, 40, a.Used(), "p1 is not on top")

	Free(a, p2)
	FreeSlice(a, s)
	Free(a, p1)
	assert.Equal(t, 0, a.Used())

	Free[int](a, nil)
	FreeSlice[int](a, nil)
	assert.Equal(t, 0, a.Used())
}

func BenchmarkAlloc(b *testing.B) {
	a := MustNewArena(1024*1024, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Alloc[testStruct](a) == nil {
			a.Reset()
		}
	}
}

func BenchmarkAllocSlice(b *testing.B) {
	a := MustNewArena(1024*1024, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if AllocSlice[int](a, 16) == nil {
			a.Reset()
		}
	}
}
