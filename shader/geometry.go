package shader

import (
	"github.com/gogpu/bindcheck"
	"github.com/gogpu/bindcheck/internal/oracle"
)

// Draw is one draw call of the verification geometry.
type Draw struct {
	Vertices []Vertex
	Instance Instance
}

// Geometry returns the full-screen test quad as two draws, one per storage
// side. Each half spans one unit in x, so its uv.x runs 0 to 1 and wraps at
// the seam. The left half carries the flat normal, the right half the bevel
// normal, matching the region the oracle derives. m is the instance matrix.
func Geometry(m bindcheck.Mat4) []Draw {
	draws := make([]Draw, 0, len(oracle.Sides))
	for _, s := range oracle.Sides {
		x0 := float32(-1)
		region := oracle.RegionFlat
		if s == oracle.SidePositive {
			x0 = 0
			region = oracle.RegionBevel
		}
		n := region.Normal()

		corner := func(dx, y float32) Vertex {
			return Vertex{
				Position: bindcheck.Vec3{x0 + dx, y, 0},
				UV:       bindcheck.Vec2{dx, (1 + y) / 2},
				Normal:   n,
			}
		}
		bl, br := corner(0, -1), corner(1, -1)
		tl, tr := corner(0, 1), corner(1, 1)

		lo, hi := s.Range()
		draws = append(draws, Draw{
			Vertices: []Vertex{bl, br, tr, bl, tr, tl},
			Instance: Instance{Boundary: bindcheck.Range{Lo: lo, Hi: hi}, Matrix: m},
		})
	}
	return draws
}
