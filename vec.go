package bindcheck

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/bindcheck/internal/storage"
)

// Vector and matrix types shared with the shading side. All are float32 to
// match the precision the fragment stage sees; Mat4 is column-major.
type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Mat4 = mgl32.Mat4
)

// Range is the half-open boundary range [Lo, Hi) an instance carries into
// the shared storage buffer.
type Range = storage.Range

// MatFromCols builds a column-major matrix from its four columns.
func MatFromCols(c0, c1, c2, c3 Vec4) Mat4 {
	return mgl32.Mat4FromCols(c0, c1, c2, c3)
}
