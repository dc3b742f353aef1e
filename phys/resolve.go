package phys

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// ResolveMovement moves an entity with the given bounding box from position
// by velocity through the blocks of src, stopping and sliding along any
// solid geometry in the way. last, if non-nil, must be the result of the
// previous tick for the same entity; it is used purely to skip redundant
// geometry tests for an entity at rest and never changes the outcome.
//
// The call is synchronous and performs no locking: resolving multiple
// entities concurrently is fine as long as src is safe for concurrent reads.
func ResolveMovement(box *BBox, velocity, position mgl64.Vec3, src BlockSource, last *MovementResult) MovementResult {
	remaining := velocity

	var result SweepResult
	result.reset()

	var collideX, collideY, collideZ bool
	var groundPos cube.Pos
	var ground Block

	// An entity resting on a block with no horizontal motion would retest
	// the same block every tick. If nothing about the resting state changed
	// since the previous tick, reuse its vertical collision outright.
	if last != nil && last.CollideY && last.GroundBlock != nil &&
		signum(remaining.Y()) == signum(last.OriginalVelocity.Y()) &&
		remaining.X() == 0 && remaining.Z() == 0 &&
		position == last.Position &&
		src.Block(last.GroundBlockPos) == last.GroundBlock {
		remaining[1] = 0
		collideY = true
		groundPos = last.GroundBlockPos
		ground = last.GroundBlock
	}

	remaining = deadZoneVec3(remaining)

	if vec3Zero(remaining) {
		if last != nil {
			return MovementResult{
				Position:         position,
				OnGround:         last.OnGround,
				CollideX:         last.CollideX,
				CollideY:         last.CollideY,
				CollideZ:         last.CollideZ,
				OriginalVelocity: velocity,
				GroundBlockPos:   last.GroundBlockPos,
				GroundBlock:      last.GroundBlock,
			}
		}
		return MovementResult{Position: position, OriginalVelocity: velocity}
	}

	step := stepMovement(box, remaining, position, src, &result)

	// Resolve one collision at a time: the collided axis is zeroed and the
	// rest of the movement is retried, which lets the entity slide along a
	// surface after a partial hit. An axis stays marked collided for the
	// whole tick once it fired. The sub-step count is capped at the axis
	// count so degenerate shape geometry cannot spin the loop.
	for iter := 0; step.collideX || step.collideY || step.collideZ; iter++ {
		if step.collideX {
			collideX = true
		}
		if step.collideZ {
			collideZ = true
		}
		if step.collideY {
			collideY = true
			// Only a purely vertical collision with no horizontal intent
			// identifies a resting block for the next tick's short-circuit.
			if !step.collideX && !step.collideZ && velocity.X() == 0 && velocity.Z() == 0 {
				groundPos = step.blockPos
				ground = step.block
			}
		}

		if collideX && collideY && collideZ {
			break
		}
		if vec3Zero(step.remaining) {
			break
		}
		if iter >= 2 {
			break
		}

		result.reset()
		step = stepMovement(box, step.remaining, step.pos, src, &result)
	}

	newVel := velocity
	if collideX {
		newVel[0] = 0
	}
	if collideY {
		newVel[1] = 0
	}
	if collideZ {
		newVel[2] = 0
	}

	return MovementResult{
		Position:         step.pos,
		Velocity:         newVel,
		OnGround:         newVel[1] == 0 && velocity.Y() < 0,
		CollideX:         collideX,
		CollideY:         collideY,
		CollideZ:         collideZ,
		OriginalVelocity: velocity,
		GroundBlockPos:   groundPos,
		GroundBlock:      ground,
	}
}

type stepResult struct {
	pos       mgl64.Vec3
	remaining mgl64.Vec3

	collideX, collideY, collideZ bool

	blockPos cube.Pos
	block    Block
}

// stepMovement performs a single sub-step: it finds the earliest collision
// along delta, moves up to it and returns the untravelled remainder with the
// struck axes zeroed.
func stepMovement(box *BBox, delta, pos mgl64.Vec3, src BlockSource, result *SweepResult) stepResult {
	points := box.Faces(delta)

	if delta.Len() < 1 {
		// A segment shorter than one block crosses at most one cell boundary
		// per axis, so the cells a point can pass through are exactly the
		// corner combinations of its before and after coordinates. Only
		// combinations whose axes actually crossed a boundary are tested.
		for _, point := range points {
			before := point.Add(pos)
			bp := cube.PosFromVec3(before)
			ap := cube.PosFromVec3(before.Add(delta))

			checkBlockCollision(src, bp, pos, delta, box, result)

			if bp.X() != ap.X() {
				checkBlockCollision(src, cube.Pos{ap.X(), bp.Y(), bp.Z()}, pos, delta, box, result)
				if bp.Y() != ap.Y() {
					checkBlockCollision(src, cube.Pos{ap.X(), ap.Y(), bp.Z()}, pos, delta, box, result)
				}
				if bp.Z() != ap.Z() {
					checkBlockCollision(src, cube.Pos{ap.X(), bp.Y(), ap.Z()}, pos, delta, box, result)
				}
			}
			if bp.Y() != ap.Y() {
				checkBlockCollision(src, cube.Pos{bp.X(), ap.Y(), bp.Z()}, pos, delta, box, result)
				if bp.Z() != ap.Z() {
					checkBlockCollision(src, cube.Pos{bp.X(), ap.Y(), ap.Z()}, pos, delta, box, result)
				}
			}
			if bp.Z() != ap.Z() {
				checkBlockCollision(src, cube.Pos{bp.X(), bp.Y(), ap.Z()}, pos, delta, box, result)
			}
			if bp.X() != ap.X() && bp.Y() != ap.Y() && bp.Z() != ap.Z() {
				checkBlockCollision(src, ap, pos, delta, box, result)
			}
		}
	} else {
		for _, point := range points {
			raycastCollision(delta, point.Add(pos), src, box, pos, result)
		}
	}

	moved := delta.Mul(result.Ratio)
	final := pos.Add(moved)
	remaining := delta.Sub(moved)

	step := stepResult{blockPos: result.BlockPos, block: result.Block}
	if result.NormalX != 0 {
		step.collideX = true
		remaining[0] = 0
	}
	if result.NormalY != 0 {
		step.collideY = true
		remaining[1] = 0
	}
	if result.NormalZ != 0 {
		step.collideZ = true
		remaining[2] = 0
	}

	step.remaining = deadZoneVec3(remaining)
	for i := range final {
		if math.Abs(final[i]-pos[i]) < minDelta {
			final[i] = pos[i]
		}
	}
	step.pos = final
	return step
}

// checkBlockCollision tests a single block position against the moving box,
// recording the block in result if it produced the new best hit. Non-solid
// blocks are never tested.
func checkBlockCollision(src BlockSource, blockPos cube.Pos, pos, delta mgl64.Vec3, box *BBox, result *SweepResult) bool {
	b := src.Block(blockPos)
	if b == nil || !b.Solid() {
		return false
	}
	m := b.Model()
	if m == nil {
		return false
	}
	hit := m.IntersectSwept(pos, delta, blockPos, box, result)
	if hit {
		result.BlockPos = blockPos
		result.Block = b
	}
	return hit
}
