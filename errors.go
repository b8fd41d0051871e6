package stackarena

import "errors"

var (
	// ErrInvalidCapacity is returned when an arena is configured with a
	// capacity that is not positive or that cannot be backed by memory.
	ErrInvalidCapacity = errors.New("stackarena: capacity must be greater than zero")
	// ErrInvalidAlignment is returned when the arena alignment is not a
	// power of two.
	ErrInvalidAlignment = errors.New("stackarena: alignment must be a power of two")
	// ErrInvalidMarker is returned by ResetToMarker when the marker was
	// not produced by the arena or points outside of it.
	ErrInvalidMarker = errors.New("stackarena: invalid marker")
)
