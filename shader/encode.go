package shader

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/bindcheck"
)

// Buffer sizes in bytes.
const (
	TransformSize = 64 // mat4x4<f32>
	MaterialSize  = 32 // vec4 + 3 x f32, rounded up to 16
	EntrySize     = 16 // vec4<f32>
)

// Vertex is one per-vertex record of the vertex buffer.
type Vertex struct {
	Position bindcheck.Vec3 // offset  0
	UV       bindcheck.Vec2 // offset 12
	Normal   bindcheck.Vec3 // offset 20
}

// Instance is one per-instance record of the instance buffer.
type Instance struct {
	Boundary bindcheck.Range // offset 0
	Matrix   bindcheck.Mat4  // offset 8, column-major
}

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putF32s(buf []byte, off int, vs ...float32) {
	for i, v := range vs {
		putF32(buf, off+4*i, v)
	}
}

// Marshal serializes the vertex into VertexStride bytes.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	putF32s(buf, 0, v.Position[:]...)
	putF32s(buf, 12, v.UV[:]...)
	putF32s(buf, 20, v.Normal[:]...)
	return buf
}

// Marshal serializes the instance into InstanceStride bytes.
func (in *Instance) Marshal() []byte {
	buf := make([]byte, InstanceStride)
	binary.LittleEndian.PutUint32(buf[0:4], in.Boundary.Lo)
	binary.LittleEndian.PutUint32(buf[4:8], in.Boundary.Hi)
	putF32s(buf, 8, in.Matrix[:]...)
	return buf
}

// MarshalTransform encodes the transform uniform block.
func MarshalTransform(m bindcheck.Mat4) []byte {
	buf := make([]byte, TransformSize)
	putF32s(buf, 0, m[:]...)
	return buf
}

// MarshalMaterial encodes the material uniform block. The three scalars
// pack directly after the albedo vector; the tail is padding.
func MarshalMaterial(m bindcheck.Material) []byte {
	buf := make([]byte, MaterialSize)
	putF32s(buf, 0, m.Albedo[:]...)
	putF32(buf, 16, m.Roughness)
	putF32(buf, 20, m.Reflectance)
	putF32(buf, 24, m.AmbientRatio)
	return buf
}

// MarshalStorage encodes the storage buffer, EntrySize bytes per entry.
func MarshalStorage(entries []bindcheck.Vec4) []byte {
	buf := make([]byte, len(entries)*EntrySize)
	for i, e := range entries {
		putF32s(buf, i*EntrySize, e[:]...)
	}
	return buf
}

// MarshalVertices concatenates vertex records.
func MarshalVertices(vs []Vertex) []byte {
	buf := make([]byte, 0, len(vs)*VertexStride)
	for i := range vs {
		buf = append(buf, vs[i].Marshal()...)
	}
	return buf
}

// MarshalInstances concatenates instance records.
func MarshalInstances(ins []Instance) []byte {
	buf := make([]byte, 0, len(ins)*InstanceStride)
	for i := range ins {
		buf = append(buf, ins[i].Marshal()...)
	}
	return buf
}

// Buffers holds the uploaded contents of every buffer binding.
type Buffers struct {
	Transform []byte
	Material  []byte
	Storage   []byte
}

// EncodeBindings encodes the buffer bindings of b.
func EncodeBindings(b *bindcheck.Bindings) Buffers {
	return Buffers{
		Transform: MarshalTransform(b.Transform),
		Material:  MarshalMaterial(b.Material),
		Storage:   MarshalStorage(b.Storage),
	}
}
