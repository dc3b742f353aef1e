package blockmodel

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxphys/voxphys/phys"
)

var fullBox = cube.Box(0, 0, 0, 1, 1, 1)

// Solid is the full one-block cube model.
type Solid struct{}

// BBoxes returns the boxes of the model at the given block position.
func (Solid) BBoxes(pos cube.Pos) []cube.BBox {
	return []cube.BBox{fullBox.Translate(pos.Vec3())}
}

func (s Solid) IntersectSwept(pos, delta mgl64.Vec3, blockPos cube.Pos, box *phys.BBox, result *phys.SweepResult) bool {
	return sweepBoxes(s.BBoxes(blockPos), pos, delta, box, result)
}

// sweepBoxes sweeps the entity box through delta against each box of a
// model, reporting whether any of them produced the new best hit.
func sweepBoxes(boxes []cube.BBox, pos, delta mgl64.Vec3, box *phys.BBox, result *phys.SweepResult) bool {
	moving := box.At(pos)
	hit := false
	for _, b := range boxes {
		if phys.SweptBoxCollision(moving, delta, b, result) {
			hit = true
		}
	}
	return hit
}
