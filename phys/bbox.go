package phys

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// BBox is the axis-aligned bounding volume of a moving entity. It is defined
// relative to the entity position: centered horizontally, with the bottom
// face at the position's Y level. The sample points needed for collision are
// precomputed for every movement direction when the box is created, so a
// BBox is immutable and safe to share between resolution calls.
type BBox struct {
	min, max mgl64.Vec3
	faces    map[[3]int][]mgl64.Vec3
}

// NewBBox returns a bounding box of the given horizontal width and height.
func NewBBox(width, height float64) *BBox {
	h := width / 2
	min := mgl64.Vec3{-h, 0, -h}
	max := mgl64.Vec3{h, height, h}
	b := &BBox{min: min, max: max, faces: make(map[[3]int][]mgl64.Vec3, 27)}
	for sx := -1; sx <= 1; sx++ {
		for sy := -1; sy <= 1; sy++ {
			for sz := -1; sz <= 1; sz++ {
				sign := [3]int{sx, sy, sz}
				b.faces[sign] = faceSamples(min, max, sign)
			}
		}
	}
	return b
}

// Width returns the horizontal extent of the box.
func (b *BBox) Width() float64 { return b.max[0] - b.min[0] }

// Height returns the vertical extent of the box.
func (b *BBox) Height() float64 { return b.max[1] - b.min[1] }

// At returns the box in world space for an entity at pos.
func (b *BBox) At(pos mgl64.Vec3) cube.BBox {
	return cube.Box(
		b.min[0]+pos[0], b.min[1]+pos[1], b.min[2]+pos[2],
		b.max[0]+pos[0], b.max[1]+pos[1], b.max[2]+pos[2],
	)
}

// Faces returns the sample points, relative to the entity position, on the
// faces leading the given movement. Every block column one of those faces
// overlaps contains at least one point, which is what makes per-point block
// enumeration exhaustive.
func (b *BBox) Faces(delta mgl64.Vec3) []mgl64.Vec3 {
	return b.faces[[3]int{signum(delta[0]), signum(delta[1]), signum(delta[2])}]
}

// faceSamples collects the points of the faces leading a movement with the
// given per-axis signs, sampled at one-block intervals including both edges
// and deduplicated across shared edges and corners.
func faceSamples(min, max mgl64.Vec3, sign [3]int) []mgl64.Vec3 {
	var points []mgl64.Vec3
	seen := make(map[mgl64.Vec3]struct{})
	add := func(p mgl64.Vec3) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}

	for axis, s := range sign {
		if s == 0 {
			continue
		}
		fixed := min[axis]
		if s > 0 {
			fixed = max[axis]
		}
		u, v := (axis+1)%3, (axis+2)%3
		for _, a := range axisSteps(min[u], max[u]) {
			for _, b := range axisSteps(min[v], max[v]) {
				var p mgl64.Vec3
				p[axis], p[u], p[v] = fixed, a, b
				add(p)
			}
		}
	}
	return points
}

func axisSteps(lo, hi float64) []float64 {
	steps := []float64{lo}
	for v := lo + 1; v < hi; v++ {
		steps = append(steps, v)
	}
	if hi > lo {
		steps = append(steps, hi)
	}
	return steps
}
