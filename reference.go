package bindcheck

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/bindcheck/internal/oracle"
)

// Side selects the half of the storage buffer an invocation reads,
// by the sign of position.x.
type Side = oracle.Side

// Storage sides in buffer order.
const (
	SideNegative = oracle.SideNegative
	SidePositive = oracle.SidePositive
)

// SegmentLen is the number of storage entries per side.
const SegmentLen = oracle.SegmentLen

// Material is the material uniform block shared by the whole draw.
type Material struct {
	Albedo       Vec4
	Roughness    float32
	Reflectance  float32
	AmbientRatio float32
}

// Segment is one side's run of storage entries.
type Segment [SegmentLen]Vec4

// Reference holds the fixed constants a correctly wired pipeline binds.
type Reference struct {
	// Transform is the expected global uniform matrix (column-major).
	Transform Mat4

	// Material is the expected material block.
	Material Material

	// Segments holds the expected storage contents, indexed by Side.
	Segments [oracle.SideCount]Segment
}

// referenceSegment is stored identically on both sides; only the index
// range differs.
var referenceSegment = Segment{
	{0, 0, 1, 0},
	{1, 0, 1, 1},
	{1, 1, 0, 1},
	{0, 1, 0, 0},
}

// DefaultReference returns the reference constants of the binding test.
func DefaultReference() Reference {
	return Reference{
		Transform: MatFromCols(
			Vec4{1, 2, 3, 4},
			Vec4{5, 6, 7, 8},
			Vec4{9, 10, 11, 12},
			Vec4{13, 14, 15, 16},
		),
		Material: Material{
			Albedo:       Vec4{0.2, 0.4, 0.6, 1.0},
			Roughness:    0.31415,
			Reflectance:  0.29613,
			AmbientRatio: 0.92,
		},
		Segments: [oracle.SideCount]Segment{referenceSegment, referenceSegment},
	}
}

// Segment returns the expected storage contents for side s.
func (r *Reference) Segment(s Side) Segment {
	return r.Segments[s]
}

// StorageBuffer returns the storage contents a correct pipeline uploads:
// every side's segment, in side order.
func (r *Reference) StorageBuffer() []Vec4 {
	buf := make([]Vec4, 0, len(r.Segments)*SegmentLen)
	for _, seg := range r.Segments {
		buf = append(buf, seg[:]...)
	}
	return buf
}

// Bindings returns the bindings a correctly wired pipeline delivers, with
// tex as the sampled texture.
func (r *Reference) Bindings(tex Texture) Bindings {
	return Bindings{
		Transform: r.Transform,
		Material:  r.Material,
		Texture:   tex,
		Storage:   r.StorageBuffer(),
	}
}

// Validate rejects references holding NaN or infinite values, which no
// tolerance comparison could ever match.
func (r *Reference) Validate() error {
	for i, v := range r.Transform {
		if !finite(v) {
			return fmt.Errorf("%w: transform element %d is %v", ErrInvalidReference, i, v)
		}
	}
	m := r.Material
	for _, f := range []struct {
		name string
		v    float32
	}{
		{"roughness", m.Roughness},
		{"reflectance", m.Reflectance},
		{"ambient_ratio", m.AmbientRatio},
	} {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidReference, f.name, f.v)
		}
	}
	for i, v := range m.Albedo {
		if !finite(v) {
			return fmt.Errorf("%w: albedo component %d is %v", ErrInvalidReference, i, v)
		}
	}
	for s, seg := range r.Segments {
		for i, e := range seg {
			for _, v := range e {
				if !finite(v) {
					return fmt.Errorf("%w: segment %v entry %d is %v", ErrInvalidReference, Side(s), i, e)
				}
			}
		}
	}
	return nil
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
