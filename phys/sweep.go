package phys

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// SweepResult accumulates the earliest collision found so far along a single
// movement segment. Ratio is the fraction of the segment travelled before
// the hit, starts at 1 (no collision) and only ever decreases. Exactly one
// of the normals is nonzero for a recorded hit, opposite in sign to the
// movement on that axis. A SweepResult is owned by one resolution call and
// must never be shared between concurrent calls.
type SweepResult struct {
	Ratio                     float64
	NormalX, NormalY, NormalZ float64

	// BlockPos and Block identify the block that produced the current best
	// hit. They are maintained by the resolver, not by shapes.
	BlockPos cube.Pos
	Block    Block
}

func (r *SweepResult) reset() {
	r.Ratio = 1
	r.NormalX, r.NormalY, r.NormalZ = 0, 0, 0
	r.Block = nil
}

// Hit reports whether any collision has been recorded.
func (r *SweepResult) Hit() bool {
	return r.NormalX != 0 || r.NormalY != 0 || r.NormalZ != 0
}

// SweptBoxCollision sweeps moving through delta against static and records
// the hit in result if it happens earlier than the current best. Boxes that
// already penetrate each other do not produce a hit: the sweep only finds
// collisions ahead of the movement. Returns whether this pair produced a
// hit, winning or not.
func SweptBoxCollision(moving cube.BBox, delta mgl64.Vec3, static cube.BBox, result *SweepResult) bool {
	var tEntry, tExit [3]float64
	movMin, movMax := moving.Min(), moving.Max()
	stMin, stMax := static.Min(), static.Max()

	for i := 0; i < 3; i++ {
		d := delta[i]
		switch {
		case d > 0:
			tEntry[i] = (stMin[i] - movMax[i]) / d
			tExit[i] = (stMax[i] - movMin[i]) / d
		case d < 0:
			tEntry[i] = (stMax[i] - movMin[i]) / d
			tExit[i] = (stMin[i] - movMax[i]) / d
		default:
			// Not moving on this axis: the boxes must already overlap on it
			// for a collision to be possible at all. Touching faces do not
			// count as overlap, which is what lets an entity slide along a
			// surface it is resting against.
			if movMax[i] <= stMin[i] || movMin[i] >= stMax[i] {
				return false
			}
			tEntry[i] = math.Inf(-1)
			tExit[i] = math.Inf(1)
		}
	}

	entry, axis := tEntry[0], 0
	if tEntry[1] > entry {
		entry, axis = tEntry[1], 1
	}
	if tEntry[2] > entry {
		entry, axis = tEntry[2], 2
	}
	exit := math.Min(tExit[0], math.Min(tExit[1], tExit[2]))

	if entry > exit || entry < 0 {
		return false
	}
	// A hit exactly at the end of the segment may round just past 1 when the
	// gap and the displacement are not exactly representable; clamp it so a
	// flush stop still registers as a collision.
	if entry > 1 {
		if entry-1 > 1e-7 {
			return false
		}
		entry = 1
	}
	// Only a strictly earlier hit replaces the recorded one; ties keep the
	// first. The untouched accumulator (Ratio 1, no hit) still accepts a hit
	// exactly at the end of the segment.
	if entry > result.Ratio || (entry == result.Ratio && result.Hit()) {
		return false
	}

	result.Ratio = entry
	result.NormalX, result.NormalY, result.NormalZ = 0, 0, 0
	switch axis {
	case 0:
		result.NormalX = -float64(signum(delta[0]))
	case 1:
		result.NormalY = -float64(signum(delta[1]))
	case 2:
		result.NormalZ = -float64(signum(delta[2]))
	}
	return true
}
