package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxphys/voxphys/phys"
)

// Entity is a moving axis-aligned volume. It owns the result of its previous
// movement tick, which the resolver uses to skip geometry tests while the
// entity rests on an unchanged block. Velocity is supplied by the caller
// every tick; the entity applies no physics of its own.
type Entity struct {
	box  *phys.BBox
	pos  mgl64.Vec3
	vel  mgl64.Vec3
	last *phys.MovementResult
}

// New creates an entity of the given dimensions at pos.
func New(width, height float64, pos mgl64.Vec3) *Entity {
	return &Entity{box: phys.NewBBox(width, height), pos: pos}
}

// Move resolves one movement tick with the given intended velocity and
// applies the outcome to the entity.
func (e *Entity) Move(src phys.BlockSource, vel mgl64.Vec3) phys.MovementResult {
	res := phys.ResolveMovement(e.box, vel, e.pos, src, e.last)
	e.pos = res.Position
	e.vel = res.Velocity
	e.last = &res
	return res
}

// Position returns the entity's current position.
func (e *Entity) Position() mgl64.Vec3 { return e.pos }

// Velocity returns the remaining velocity of the last tick.
func (e *Entity) Velocity() mgl64.Vec3 { return e.vel }

// Box returns the entity's bounding box.
func (e *Entity) Box() *phys.BBox { return e.box }

// OnGround reports whether the last tick ended with the entity grounded.
func (e *Entity) OnGround() bool {
	return e.last != nil && e.last.OnGround
}

// LastResult returns the outcome of the previous tick, or nil before the
// first one.
func (e *Entity) LastResult() *phys.MovementResult { return e.last }
