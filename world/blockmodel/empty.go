package blockmodel

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxphys/voxphys/phys"
)

var emptyBBList = []cube.BBox{}

// Empty is the model of blocks without any collision volume.
type Empty struct{}

// BBoxes returns the boxes of the model at the given block position.
func (Empty) BBoxes(pos cube.Pos) []cube.BBox {
	return emptyBBList
}

func (Empty) IntersectSwept(pos, delta mgl64.Vec3, blockPos cube.Pos, box *phys.BBox, result *phys.SweepResult) bool {
	return false
}
