package bindcheck

import (
	"fmt"

	"github.com/gogpu/bindcheck/internal/oracle"
	"github.com/gogpu/bindcheck/internal/storage"
)

// Bindings are the resources the pipeline under test delivered to the
// fragment stage. They are read-only for the duration of a dispatch.
type Bindings struct {
	// Transform is the global uniform matrix.
	Transform Mat4

	// Material is the material uniform block.
	Material Material

	// Texture is the image and sampler pair sampled on full success.
	Texture Texture

	// Storage is the shared storage buffer of vec4 entries.
	Storage []Vec4
}

// Validate checks the host-side preconditions the chain relies on: a bound
// texture and a storage buffer large enough for every side's segment.
func (b *Bindings) Validate() error {
	if b.Texture == nil {
		return ErrNoTexture
	}
	ranges := storage.Partition(len(SideRanges()), SegmentLen)
	if err := storage.ValidatePartition(ranges, len(b.Storage)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageTooSmall, err)
	}
	return nil
}

// Invocation is the per-fragment input: interpolated vertex attributes plus
// the flat per-instance descriptor.
type Invocation struct {
	// Position is the interpolated object-space position. It is the only
	// input the oracle trusts.
	Position Vec3

	// UV is the interpolated texture coordinate.
	UV Vec2

	// Normal is the interpolated normal.
	Normal Vec3

	// Boundary is the flat storage range of the instance.
	Boundary Range

	// InstanceMatrix is the per-instance transform.
	InstanceMatrix Mat4
}

// SideRanges returns the storage range of every side, in side order.
func SideRanges() []Range {
	ranges := make([]Range, 0, len(oracle.Sides))
	for _, s := range oracle.Sides {
		lo, hi := s.Range()
		ranges = append(ranges, Range{Lo: lo, Hi: hi})
	}
	return ranges
}
