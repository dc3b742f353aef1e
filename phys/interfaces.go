package phys

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// BlockSource is a read-only view of the voxel grid used during movement
// resolution. Implementations must return a usable non-solid block for
// positions that are not loaded instead of failing, so resolution is never
// blocked by incomplete world data. A source must be safe for concurrent
// reads if entities are resolved in parallel against it.
type BlockSource interface {
	Block(pos cube.Pos) Block
}

// Block is a single voxel type.
type Block interface {
	// Solid reports whether the block takes part in collisions at all.
	Solid() bool
	// Model returns the collision model of the block. Only consulted for
	// solid blocks.
	Model() Shape
}

// Shape is the collision model of a block. IntersectSwept sweeps the entity
// box located at pos through delta against the shape placed at blockPos,
// lowering result to any strictly earlier hit it finds. The return value
// reports whether this shape updated result; the accumulator state stays the
// authoritative outcome.
type Shape interface {
	IntersectSwept(pos, delta mgl64.Vec3, blockPos cube.Pos, box *BBox, result *SweepResult) bool
}
