// Package scenario builds verification draws: invocation sources that
// mimic a full-screen test geometry, and bindings with one injected fault.
//
// The geometry covers normalized device coordinates [-1, 1] x [-1, 1] with
// y pointing up, and its object-space position equals the NDC position of
// each pixel center. The left half (x < 0) reads the first storage segment
// and carries the flat normal; the right half reads the second segment and
// carries the bevel normal.
package scenario

import (
	"errors"

	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/internal/oracle"
)

// ErrUnknownFault is returned when parsing an unknown fault name.
var ErrUnknownFault = errors.New("scenario: unknown fault")

// Scenario is a complete verification draw.
type Scenario struct {
	Fault    Fault
	Bindings bindcheck.Bindings
	Source   bindcheck.InvocationSource
}

// Expect returns the diagnostic every pixel of the draw reports.
func (s *Scenario) Expect() bindcheck.Diagnostic {
	return s.Fault.Expect()
}

// Name returns the fault name.
func (s *Scenario) Name() string {
	return s.Fault.String()
}

// Position returns the object-space position of pixel (x, y) of a
// width x height target.
func Position(x, y, width, height int) bindcheck.Vec3 {
	return bindcheck.Vec3{
		2*(float32(x)+0.5)/float32(width) - 1,
		1 - 2*(float32(y)+0.5)/float32(height),
		0,
	}
}

// Consistent returns the invocation a correct pipeline produces at p, with
// m as the per-instance matrix.
func Consistent(p bindcheck.Vec3, m bindcheck.Mat4) bindcheck.Invocation {
	uv := oracle.ExpectedUV(p)
	lo, hi := oracle.ExpectedRange(p)
	return bindcheck.Invocation{
		Position:       p,
		UV:             uv,
		Normal:         oracle.ExpectedNormal(uv, p),
		Boundary:       bindcheck.Range{Lo: lo, Hi: hi},
		InstanceMatrix: m,
	}
}

// Quad returns the source of a correctly wired full-screen draw whose
// instances carry the reference transform.
func Quad(ref bindcheck.Reference) bindcheck.InvocationSource {
	return func(x, y, w, h int) (bindcheck.Invocation, bool) {
		return Consistent(Position(x, y, w, h), ref.Transform), true
	}
}

// New builds the draw for fault f on top of the reference bindings.
func New(ref bindcheck.Reference, tex bindcheck.Texture, f Fault) Scenario {
	b := ref.Bindings(tex)
	perturb := func(inv *bindcheck.Invocation) {}

	switch f {
	case FaultUV:
		perturb = func(inv *bindcheck.Invocation) {
			inv.UV[1] += 0.25
		}
	case FaultNormal:
		perturb = func(inv *bindcheck.Invocation) {
			inv.Normal = inv.Normal.Mul(-1)
		}
	case FaultInstanceMatrix:
		perturb = func(inv *bindcheck.Invocation) {
			inv.InstanceMatrix[5] += 1
		}
	case FaultUniformMatrix:
		b.Transform[15] += 1
	case FaultAlbedo:
		b.Material.Albedo[3] -= 0.5
	case FaultRoughness:
		b.Material.Roughness += 0.25
	case FaultReflectance:
		b.Material.Reflectance += 0.1
	case FaultAmbientRatio:
		b.Material.AmbientRatio -= 0.25
	case FaultBoundary:
		perturb = func(inv *bindcheck.Invocation) {
			n := uint32(inv.Boundary.Len())
			if inv.Boundary.Lo >= n {
				inv.Boundary = bindcheck.Range{Lo: inv.Boundary.Lo - n, Hi: inv.Boundary.Hi - n}
			} else {
				inv.Boundary = bindcheck.Range{Lo: inv.Boundary.Lo + n, Hi: inv.Boundary.Hi + n}
			}
		}
	case FaultStorage:
		for s := range b.Storage {
			if s%bindcheck.SegmentLen == bindcheck.SegmentLen-1 {
				b.Storage[s] = b.Storage[s].Add(bindcheck.Vec4{1, 1, 1, 1})
			}
		}
	case FaultStorageTail:
		for range bindcheck.SegmentLen {
			b.Storage = append(b.Storage, bindcheck.Vec4{-1, -1, -1, -1})
		}
	}

	m := b.Transform
	return Scenario{
		Fault:    f,
		Bindings: b,
		Source: func(x, y, w, h int) (bindcheck.Invocation, bool) {
			inv := Consistent(Position(x, y, w, h), m)
			perturb(&inv)
			return inv, true
		},
	}
}

// All builds one draw per fault, FaultNone first.
func All(ref bindcheck.Reference, tex bindcheck.Texture) []Scenario {
	faults := Faults()
	out := make([]Scenario, len(faults))
	for i, f := range faults {
		out[i] = New(ref, tex, f)
	}
	return out
}
