package phys

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minDelta is the minimum per-axis movement. Anything below it is truncated
// to zero before and during resolution so that floating point jitter does
// not waste block queries.
const minDelta = 0.001

func deadZone(v float64) float64 {
	if math.Abs(v) < minDelta {
		return 0
	}
	return v
}

func deadZoneVec3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{deadZone(v[0]), deadZone(v[1]), deadZone(v[2])}
}

func signum(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func vec3Zero(v mgl64.Vec3) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}
