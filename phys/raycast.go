package phys

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// raycastCollision walks every block the segment from origin through delta
// passes and tests each against the moving entity box. Used for moves of a
// block or more, where the fixed corner enumeration of short moves no longer
// covers every cell. The walk follows the usual voxel grid stepping: advance
// to whichever axis boundary is nearest, until the segment length is spent.
func raycastCollision(delta, origin mgl64.Vec3, src BlockSource, box *BBox, pos mgl64.Vec3, result *SweepResult) {
	radius := delta.Len()
	if radius == 0 {
		return
	}
	dir := delta.Normalize()

	stepX := float64(signum(dir[0]))
	stepY := float64(signum(dir[1]))
	stepZ := float64(signum(dir[2]))

	tMaxX := distanceToBoundary(origin[0], dir[0])
	tMaxY := distanceToBoundary(origin[1], dir[1])
	tMaxZ := distanceToBoundary(origin[2], dir[2])

	var tDeltaX, tDeltaY, tDeltaZ float64
	if dir[0] != 0 {
		tDeltaX = stepX / dir[0]
	}
	if dir[1] != 0 {
		tDeltaY = stepY / dir[1]
	}
	if dir[2] != 0 {
		tDeltaZ = stepZ / dir[2]
	}

	cell := cube.PosFromVec3(origin)
	for {
		checkBlockCollision(src, cell, pos, delta, box, result)

		if tMaxX < tMaxY && tMaxX < tMaxZ {
			if tMaxX > radius {
				return
			}
			cell = cube.Pos{cell.X() + int(stepX), cell.Y(), cell.Z()}
			tMaxX += tDeltaX
		} else if tMaxY < tMaxZ {
			if tMaxY > radius {
				return
			}
			cell = cube.Pos{cell.X(), cell.Y() + int(stepY), cell.Z()}
			tMaxY += tDeltaY
		} else {
			if tMaxZ > radius {
				return
			}
			cell = cube.Pos{cell.X(), cell.Y(), cell.Z() + int(stepZ)}
			tMaxZ += tDeltaZ
		}
	}
}

// distanceToBoundary returns the distance along a ray starting at s with
// direction component ds to the first grid boundary on that axis.
func distanceToBoundary(s, ds float64) float64 {
	if ds == 0 {
		return math.Inf(1)
	}
	if ds < 0 {
		s = -s
		ds = -ds
		if math.Floor(s) == s {
			return 0
		}
	}
	return (1 - (s - math.Floor(s))) / ds
}
