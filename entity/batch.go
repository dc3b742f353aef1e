package entity

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxphys/voxphys/phys"
	"github.com/voxphys/voxphys/worker"
)

// MoveAll resolves one movement tick for every entity concurrently on the
// worker pool and blocks until all are done. Each resolution owns its own
// transient state; the entities only share src, which must be safe for
// concurrent reads and must not be written to during the batch.
//
// vels holds the intended velocity per entity and must match entities in
// length.
func MoveAll(src phys.BlockSource, entities []*Entity, vels []mgl64.Vec3) {
	var wg sync.WaitGroup
	wg.Add(len(entities))
	for i, e := range entities {
		vel := vels[i]
		worker.SubmitWait(&wg, func() {
			e.Move(src, vel)
		})
	}
	wg.Wait()
}
