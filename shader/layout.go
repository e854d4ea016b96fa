package shader

import "github.com/gogpu/gputypes"

// Binding slots of group 0, in the order the WGSL source declares them.
const (
	BindingTransform uint32 = iota
	BindingMaterial
	BindingTexture
	BindingSampler
	BindingStorage

	bindingCount
)

// Vertex buffer slots.
const (
	VertexBufferSlot   uint32 = 0
	InstanceBufferSlot uint32 = 1
)

// Strides of the two vertex buffers in bytes.
const (
	VertexStride   = 32 // position vec3, uv vec2, normal vec3
	InstanceStride = 72 // boundary vec2<u32>, matrix 4 x vec4
)

// ColorFormat is the render target format the diagnostic palette is
// defined for.
const ColorFormat = gputypes.TextureFormatRGBA8Unorm

// BindGroupLayoutEntries returns the layout of the five resources the
// fragment stage checks.
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    BindingTransform,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    BindingMaterial,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    BindingTexture,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    BindingSampler,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
		{
			Binding:    BindingStorage,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		},
	}
}

// VertexBufferLayouts returns the per-vertex and per-instance buffer
// layouts feeding vs_main.
func VertexBufferLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
				{ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 12},
				{ShaderLocation: 2, Format: gputypes.VertexFormatFloat32x3, Offset: 20},
			},
		},
		{
			ArrayStride: InstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 3, Format: gputypes.VertexFormatUint32x2, Offset: 0},
				{ShaderLocation: 4, Format: gputypes.VertexFormatFloat32x4, Offset: 8},
				{ShaderLocation: 5, Format: gputypes.VertexFormatFloat32x4, Offset: 24},
				{ShaderLocation: 6, Format: gputypes.VertexFormatFloat32x4, Offset: 40},
				{ShaderLocation: 7, Format: gputypes.VertexFormatFloat32x4, Offset: 56},
			},
		},
	}
}

// ColorTarget returns the color target state. Blending stays off so
// diagnostic colors reach the target unchanged.
func ColorTarget() gputypes.ColorTargetState {
	return gputypes.ColorTargetState{
		Format:    ColorFormat,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}

// PrimitiveState returns the primitive state of the verification draw.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}
}
