package phys

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

type testShape struct {
	box cube.BBox
}

func (s testShape) IntersectSwept(pos, delta mgl64.Vec3, blockPos cube.Pos, box *BBox, result *SweepResult) bool {
	return SweptBoxCollision(box.At(pos), delta, s.box.Translate(blockPos.Vec3()), result)
}

type testBlock struct{}

func (testBlock) Solid() bool  { return true }
func (testBlock) Model() Shape { return testShape{cube.Box(0, 0, 0, 1, 1, 1)} }

type testAir struct{}

func (testAir) Solid() bool  { return false }
func (testAir) Model() Shape { return nil }

type testSource struct {
	solid   map[cube.Pos]struct{}
	queries int
}

func newTestSource(solids ...cube.Pos) *testSource {
	s := &testSource{solid: make(map[cube.Pos]struct{})}
	for _, pos := range solids {
		s.solid[pos] = struct{}{}
	}
	return s
}

func (s *testSource) addColumn(x, z, minY, maxY int) {
	for y := minY; y <= maxY; y++ {
		s.solid[cube.Pos{x, y, z}] = struct{}{}
	}
}

func (s *testSource) Block(pos cube.Pos) Block {
	s.queries++
	if _, ok := s.solid[pos]; ok {
		return testBlock{}
	}
	return testAir{}
}

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}

func TestResolveNoMovement(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	box := NewBBox(0.6, 1.8)
	pos := mgl64.Vec3{0.5, 1, 0.5}

	res := ResolveMovement(box, mgl64.Vec3{}, pos, src, nil)
	if res.Position != pos {
		t.Fatalf("position changed without movement: %v", res.Position)
	}
	if !vec3Zero(res.Velocity) {
		t.Fatalf("expected zero velocity, got %v", res.Velocity)
	}
	if res.CollideX || res.CollideY || res.CollideZ || res.OnGround {
		t.Fatalf("expected no collision flags, got %+v", res)
	}
	if src.queries != 0 {
		t.Fatalf("expected no block queries, got %d", src.queries)
	}
}

func TestResolveDeadZone(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	box := NewBBox(0.6, 1.8)
	pos := mgl64.Vec3{0.5, 1, 0.5}

	res := ResolveMovement(box, mgl64.Vec3{0.0009, -0.0005, 0.0002}, pos, src, nil)
	if res.Position != pos {
		t.Fatalf("sub-epsilon movement moved the entity: %v", res.Position)
	}
	if !vec3Zero(res.Velocity) {
		t.Fatalf("expected zero velocity, got %v", res.Velocity)
	}
	if src.queries != 0 {
		t.Fatalf("expected no block queries, got %d", src.queries)
	}

	// With a previous result the collision flags carry over unchanged.
	last := &MovementResult{
		Position: pos, OnGround: true, CollideY: true,
		OriginalVelocity: mgl64.Vec3{0, -0.5, 0},
	}
	res = ResolveMovement(box, mgl64.Vec3{0.0009, 0, 0}, pos, src, last)
	if !res.CollideY || !res.OnGround {
		t.Fatalf("expected carried-over flags, got %+v", res)
	}
}

func TestResolveLanding(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	box := NewBBox(0.6, 1.8)

	res := ResolveMovement(box, mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{0.5, 1, 0.5}, src, nil)
	if res.Position.Y() != 1 {
		t.Fatalf("expected landing at y=1, got %v", res.Position)
	}
	if !res.CollideY || res.CollideX || res.CollideZ {
		t.Fatalf("expected a vertical collision only, got %+v", res)
	}
	if res.Velocity.Y() != 0 {
		t.Fatalf("expected vertical velocity zeroed, got %v", res.Velocity)
	}
	if !res.OnGround {
		t.Fatal("expected entity to be grounded")
	}
	if res.GroundBlock == nil || res.GroundBlockPos != (cube.Pos{0, 0, 0}) {
		t.Fatalf("expected ground block at (0,0,0), got %+v at %v", res.GroundBlock, res.GroundBlockPos)
	}
}

func TestResolveLandingStopsEarly(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	box := NewBBox(0.6, 1.8)

	// Falling 0.5 from y=1.3 covers only 0.3 before the block top.
	res := ResolveMovement(box, mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{0.5, 1.3, 0.5}, src, nil)
	if math.Abs(res.Position.Y()-1) > 1e-9 {
		t.Fatalf("expected stop at y=1, got %v", res.Position)
	}
	if !res.CollideY || !res.OnGround {
		t.Fatalf("expected grounded vertical collision, got %+v", res)
	}
}

func TestResolveWallStop(t *testing.T) {
	src := newTestSource()
	src.addColumn(1, 0, 1, 2)
	box := NewBBox(0.6, 1.8)

	res := ResolveMovement(box, mgl64.Vec3{0.3, 0, 0}, mgl64.Vec3{0.4, 1, 0.5}, src, nil)
	if math.Abs(res.Position.X()-0.7) > 1e-9 {
		t.Fatalf("expected stop flush against the wall at x=0.7, got %v", res.Position)
	}
	if !res.CollideX || res.CollideY || res.CollideZ {
		t.Fatalf("expected an x collision only, got %+v", res)
	}
	if res.Velocity.X() != 0 {
		t.Fatalf("expected x velocity zeroed, got %v", res.Velocity)
	}
	if res.OnGround {
		t.Fatal("horizontal collision must not ground the entity")
	}
}

func TestResolveCornerSlide(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	src.addColumn(1, 0, 1, 2)
	src.addColumn(1, 1, 1, 2)
	box := NewBBox(0.6, 1.8)

	res := ResolveMovement(box, mgl64.Vec3{0.3, -0.3, 0.3}, mgl64.Vec3{0.5, 1, 0.5}, src, nil)
	if !res.CollideX || !res.CollideY {
		t.Fatalf("expected x and y collisions, got %+v", res)
	}
	if res.CollideZ {
		t.Fatalf("z axis is unobstructed, got %+v", res)
	}
	if !vecNear(res.Position, mgl64.Vec3{0.7, 1, 0.8}, 1e-9) {
		t.Fatalf("expected slide to (0.7, 1, 0.8), got %v", res.Position)
	}
	if res.Velocity.X() != 0 || res.Velocity.Y() != 0 {
		t.Fatalf("collided axes must end with zero velocity, got %v", res.Velocity)
	}
	if res.Velocity.Z() != 0.3 {
		t.Fatalf("free axis keeps its velocity, got %v", res.Velocity)
	}
	if !res.OnGround {
		t.Fatal("expected entity to be grounded")
	}
	if res.GroundBlock != nil {
		t.Fatal("ground block is only recorded without horizontal movement intent")
	}
}

func TestResolveRestingCache(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	box := NewBBox(0.6, 1.8)
	vel := mgl64.Vec3{0, -0.5, 0}

	first := ResolveMovement(box, vel, mgl64.Vec3{0.5, 1, 0.5}, src, nil)
	if first.GroundBlock == nil {
		t.Fatal("expected a ground block after landing")
	}

	src.queries = 0
	second := ResolveMovement(box, vel, first.Position, src, &first)
	if src.queries != 1 {
		t.Fatalf("resting resolution must only re-check the cached block, got %d queries", src.queries)
	}

	// The short-circuit is an optimization only: it must reproduce what a
	// full resolution would have produced.
	full := ResolveMovement(box, vel, first.Position, newTestSource(cube.Pos{0, 0, 0}), nil)
	if second.Position != full.Position || second.CollideY != full.CollideY || second.OnGround != full.OnGround {
		t.Fatalf("cached result diverged from full resolution: %+v vs %+v", second, full)
	}
	if second.GroundBlockPos != first.GroundBlockPos {
		t.Fatalf("ground block not carried over: %v", second.GroundBlockPos)
	}
}

func TestResolveCacheInvalidatedByBlockChange(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	box := NewBBox(0.6, 1.8)
	vel := mgl64.Vec3{0, -0.5, 0}

	first := ResolveMovement(box, vel, mgl64.Vec3{0.5, 1, 0.5}, src, nil)

	// The ground block disappears: the entity must fall instead of reusing
	// the cached collision.
	delete(src.solid, cube.Pos{0, 0, 0})
	second := ResolveMovement(box, vel, first.Position, src, &first)
	if second.CollideY {
		t.Fatalf("expected fall after ground removal, got %+v", second)
	}
	if math.Abs(second.Position.Y()-0.5) > 1e-9 {
		t.Fatalf("expected free fall to y=0.5, got %v", second.Position)
	}
}

func TestResolvePathEquivalenceAtBoundary(t *testing.T) {
	box := NewBBox(0.6, 1.8)
	pos := mgl64.Vec3{0.4, 1, 0.5}

	// The same wall hit, resolved with a displacement just below, exactly
	// at, and just above the short/long classification threshold. All three
	// must agree on the struck block and on the distance travelled.
	for _, length := range []float64{0.999, 1, 1.001} {
		src := newTestSource()
		src.addColumn(1, 0, 1, 2)

		var result SweepResult
		result.reset()
		step := stepMovement(box, mgl64.Vec3{length, 0, 0}, pos, src, &result)

		if result.BlockPos != (cube.Pos{1, 1, 0}) && result.BlockPos != (cube.Pos{1, 2, 0}) {
			t.Fatalf("length %v: struck unexpected block %v", length, result.BlockPos)
		}
		if travelled := result.Ratio * length; math.Abs(travelled-0.3) > 1e-9 {
			t.Fatalf("length %v: travelled %v, want 0.3", length, travelled)
		}
		if math.Abs(step.pos.X()-0.7) > 1e-9 {
			t.Fatalf("length %v: stopped at %v, want x=0.7", length, step.pos)
		}
		if !step.collideX {
			t.Fatalf("length %v: expected x collision", length)
		}
	}
}

func TestResolveLongDiagonalMove(t *testing.T) {
	src := newTestSource()
	for x := -1; x <= 4; x++ {
		for z := -1; z <= 1; z++ {
			src.solid[cube.Pos{x, 0, z}] = struct{}{}
		}
	}
	box := NewBBox(0.6, 1.8)

	res := ResolveMovement(box, mgl64.Vec3{3, -3, 0}, mgl64.Vec3{0.5, 3, 0.5}, src, nil)
	if !res.CollideY || res.CollideX || res.CollideZ {
		t.Fatalf("expected a vertical collision only, got %+v", res)
	}
	if !vecNear(res.Position, mgl64.Vec3{3.5, 1, 0.5}, 1e-9) {
		t.Fatalf("expected slide along the floor to (3.5, 1, 0.5), got %v", res.Position)
	}
	if !res.OnGround {
		t.Fatal("expected entity to be grounded")
	}
	if res.Velocity != (mgl64.Vec3{3, 0, 0}) {
		t.Fatalf("expected remaining velocity (3,0,0), got %v", res.Velocity)
	}
}

func TestResolveSubStepNeverOvershoots(t *testing.T) {
	src := newTestSource(cube.Pos{0, 0, 0})
	src.addColumn(1, 0, 1, 2)
	src.addColumn(1, 1, 1, 2)
	box := NewBBox(0.6, 1.8)
	pos := mgl64.Vec3{0.5, 1, 0.5}
	delta := mgl64.Vec3{0.3, -0.3, 0.3}

	for sub := 0; sub < 3 && !vec3Zero(delta); sub++ {
		var result SweepResult
		result.reset()
		step := stepMovement(box, delta, pos, src, &result)

		if result.Ratio < 0 || result.Ratio > 1 {
			t.Fatalf("collision ratio out of range: %v", result.Ratio)
		}
		for i := 0; i < 3; i++ {
			if math.Abs(step.pos[i]-pos[i]) > math.Abs(delta[i])+1e-9 {
				t.Fatalf("sub-step travelled %v on axis %d, more than remaining %v", step.pos[i]-pos[i], i, delta[i])
			}
		}
		pos, delta = step.pos, step.remaining
	}
}
