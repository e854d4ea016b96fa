// Package storage resolves which slice of the shared, unbounded storage
// buffer belongs to an invocation.
//
// The buffer is logically partitioned into fixed-size, contiguous,
// non-overlapping segments, one per side of the test geometry. Each
// invocation carries a flat half-open range [Lo, Hi) naming its segment.
// Reads fail closed: a range that does not fit the buffer is reported as
// ErrOutOfRange and never partially read.
package storage

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrOutOfRange is returned when a range does not lie within the buffer.
var ErrOutOfRange = errors.New("storage: range out of bounds")

// ErrOverlap is returned when partition ranges overlap or leave gaps.
var ErrOverlap = errors.New("storage: segments are not contiguous")

// Range is a half-open index interval [Lo, Hi) into the storage buffer.
type Range struct {
	Lo uint32
	Hi uint32
}

// Len returns Hi-Lo, or 0 for an inverted range.
func (r Range) Len() int {
	if r.Hi < r.Lo {
		return 0
	}
	return int(r.Hi - r.Lo)
}

// String formats the range as [lo,hi).
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Lo, r.Hi)
}

// Segment returns the hi-lo consecutive entries of buf starting at lo.
// The returned slice aliases buf and must not be modified.
func Segment(buf []mgl32.Vec4, r Range) ([]mgl32.Vec4, error) {
	if r.Hi < r.Lo || uint64(r.Hi) > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %s of %d entries", ErrOutOfRange, r, len(buf))
	}
	return buf[r.Lo:r.Hi:r.Hi], nil
}

// Partition returns n contiguous segments of the given size starting at 0.
func Partition(n int, size uint32) []Range {
	ranges := make([]Range, n)
	for i := range ranges {
		lo := uint32(i) * size
		ranges[i] = Range{Lo: lo, Hi: lo + size}
	}
	return ranges
}

// ValidatePartition checks that ranges are contiguous from index 0 without
// overlap and that a buffer of bufLen entries holds all of them.
func ValidatePartition(ranges []Range, bufLen int) error {
	var next uint32
	for i, r := range ranges {
		if r.Lo != next || r.Hi < r.Lo {
			return fmt.Errorf("%w: segment %d is %s, want start %d", ErrOverlap, i, r, next)
		}
		next = r.Hi
	}
	if uint64(next) > uint64(bufLen) {
		return fmt.Errorf("%w: partition needs %d entries, buffer has %d", ErrOutOfRange, next, bufLen)
	}
	return nil
}
