package phys

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// MovementResult is the outcome of one resolved movement tick.
//
// Velocity holds the input velocity with every collided axis zeroed; axes
// that never collided keep their original value, which callers treat as
// intent for the next tick. The distance actually travelled is carried by
// Position alone.
//
// The caller owns the result and passes it back as the previous result on
// the entity's next tick, which lets the resolver skip geometry tests for an
// entity resting on an unchanged block.
type MovementResult struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	OnGround bool
	CollideX bool
	CollideY bool
	CollideZ bool

	// OriginalVelocity is the unmodified velocity this tick was resolved
	// with, kept for caller reference and for the resting short-circuit.
	OriginalVelocity mgl64.Vec3

	// GroundBlockPos and GroundBlock identify the block that produced a
	// purely vertical collision, if any. GroundBlock is nil otherwise.
	GroundBlockPos cube.Pos
	GroundBlock    Block
}
