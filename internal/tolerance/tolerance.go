// Package tolerance implements the epsilon comparisons used by the binding
// verification chain.
//
// Interpolation across a triangle and matrix transport through uniform and
// vertex buffers introduce rounding noise, so every floating-point check goes
// through NearlyEqual rather than ==. Distances are Euclidean for vectors and
// matrices and absolute for scalars.
//
// One coordinate (the horizontal texture coordinate reprojected from
// position.x) wraps at unit boundaries. For it use NearlyEqualCyclic, which
// takes the minimum over three candidate differences instead of a generic
// modulo distance: the test geometry spans more than one wrap period, so
// only the immediately adjacent periods may be folded.
package tolerance

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the absolute tolerance for every comparison in the chain.
const Epsilon float32 = 1e-6

// Distance returns |a-b|.
func Distance(a, b float32) float32 {
	return math32.Abs(a - b)
}

// CyclicDistance returns min(|x-y|, |1+x-y|, |x-y-1|).
func CyclicDistance(x, y float32) float32 {
	d := math32.Abs(x - y)
	d = math32.Min(d, math32.Abs(1+x-y))
	return math32.Min(d, math32.Abs(x-y-1))
}

// NearlyEqual reports whether |a-b| <= Epsilon.
func NearlyEqual(a, b float32) bool {
	return Distance(a, b) <= Epsilon
}

// NearlyEqualCyclic reports whether CyclicDistance(a, b) <= Epsilon.
func NearlyEqualCyclic(a, b float32) bool {
	return CyclicDistance(a, b) <= Epsilon
}

// NearlyEqualVec3 compares two vectors by Euclidean distance.
func NearlyEqualVec3(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() <= Epsilon
}

// NearlyEqualVec4 compares two vectors by Euclidean distance.
func NearlyEqualVec4(a, b mgl32.Vec4) bool {
	return a.Sub(b).Len() <= Epsilon
}

// MatDistance returns the Euclidean distance between two matrices treated
// as 16-component vectors.
func MatDistance(a, b mgl32.Mat4) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math32.Sqrt(sum)
}

// NearlyEqualMat4 compares two matrices by MatDistance.
func NearlyEqualMat4(a, b mgl32.Mat4) bool {
	return MatDistance(a, b) <= Epsilon
}
