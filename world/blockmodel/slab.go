package blockmodel

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxphys/voxphys/phys"
)

// Slab is the half-block model, occupying either the bottom or the top half
// of its cell.
type Slab struct {
	Top bool
}

// BBoxes returns the boxes of the model at the given block position.
func (s Slab) BBoxes(pos cube.Pos) []cube.BBox {
	bb := cube.Box(0, 0, 0, 1, 0.5, 1)
	if s.Top {
		bb = cube.Box(0, 0.5, 0, 1, 1, 1)
	}
	return []cube.BBox{bb.Translate(pos.Vec3())}
}

func (s Slab) IntersectSwept(pos, delta mgl64.Vec3, blockPos cube.Pos, box *phys.BBox, result *phys.SweepResult) bool {
	return sweepBoxes(s.BBoxes(blockPos), pos, delta, box, result)
}
