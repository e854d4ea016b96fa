// Package oracle computes the values a correctly wired pipeline must deliver
// to the fragment stage, derived only from the interpolated position.
//
// Position is the one input the oracle trusts; every other per-invocation
// input and bound resource is checked against what this package derives
// from it. The piecewise choices (surface region, storage side) are closed
// enumerations selected by a geometric predicate, so the oracle is total.
package oracle

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SegmentLen is the number of storage entries owned by one side of the test
// geometry.
const SegmentLen = 4

// RegionRadius is the UV distance beyond which an invocation belongs to the
// flat region of the test surface.
const RegionRadius float32 = 0.5

// Fract returns x - floor(x), matching the shading-language builtin.
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

// ExpectedUV returns (fract(p.x), (1+p.y)/2).
func ExpectedUV(p mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{Fract(p.X()), (1 + p.Y()) / 2}
}

// SampleCoord returns the texture coordinate sampled on full success: the
// position mapped from clip space to texture space with y pointing down.
func SampleCoord(p mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{(1 + p.X()) / 2, (1 - p.Y()) / 2}
}

// Region identifies the surface region an invocation lies in.
type Region uint8

const (
	// RegionBevel is the region within RegionRadius of the unwrapped UV.
	RegionBevel Region = iota
	// RegionFlat is everything farther away.
	RegionFlat
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionBevel:
		return "bevel"
	case RegionFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// Normal returns the surface normal the geometry generator assigns to r.
func (r Region) Normal() mgl32.Vec3 {
	if r == RegionFlat {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{-1, 0, 1}.Mul(1 / math32.Sqrt(2))
}

// RegionOf classifies an invocation by the distance from its interpolated
// uv to the unwrapped reprojection (p.x, (1+p.y)/2). Note the horizontal
// component is not wrapped here.
func RegionOf(uv mgl32.Vec2, p mgl32.Vec3) Region {
	unwrapped := mgl32.Vec2{p.X(), (1 + p.Y()) / 2}
	if uv.Sub(unwrapped).Len() > RegionRadius {
		return RegionFlat
	}
	return RegionBevel
}

// ExpectedNormal is RegionOf(uv, p).Normal().
func ExpectedNormal(uv mgl32.Vec2, p mgl32.Vec3) mgl32.Vec3 {
	return RegionOf(uv, p).Normal()
}

// Side identifies which half of the storage buffer an invocation reads.
type Side uint8

const (
	// SideNegative covers position.x < 0.
	SideNegative Side = iota
	// SidePositive covers position.x >= 0.
	SidePositive
)

// SideCount is the number of storage sides.
const SideCount = 2

// Sides lists every side in buffer order.
var Sides = [SideCount]Side{SideNegative, SidePositive}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideNegative:
		return "negative"
	case SidePositive:
		return "positive"
	default:
		return "unknown"
	}
}

// Range returns the half-open storage range [lo, hi) owned by s.
func (s Side) Range() (lo, hi uint32) {
	lo = uint32(s) * SegmentLen
	return lo, lo + SegmentLen
}

// SideOf selects the side by the sign of p.x only. Negative zero compares
// equal to zero and therefore lands on SidePositive.
func SideOf(p mgl32.Vec3) Side {
	if p.X() < 0 {
		return SideNegative
	}
	return SidePositive
}

// ExpectedRange is SideOf(p).Range().
func ExpectedRange(p mgl32.Vec3) (lo, hi uint32) {
	return SideOf(p).Range()
}
