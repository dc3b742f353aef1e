package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/voxphys/voxphys/entity"
	"github.com/voxphys/voxphys/world"
	"github.com/voxphys/voxphys/world/block"
)

// voxsim is a soak harness for the movement resolver: it builds a small
// terrain, spawns falling entities with random horizontal drift and ticks
// them in parallel batches.
func main() {
	entities := flag.Int("entities", 256, "number of entities to simulate")
	ticks := flag.Int("ticks", 200, "number of ticks to run")
	seed := flag.Int64("seed", 1, "seed for entity spawns and drift")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithAddr("localhost:8080"))
		mgr := statsview.New()
		go mgr.Start()
	}

	w := world.New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	buildTerrain(w)

	rng := rand.New(rand.NewSource(*seed))
	all := make([]*entity.Entity, *entities)
	vels := make([]mgl64.Vec3, *entities)
	for i := range all {
		all[i] = entity.New(0.6, 1.8, mgl64.Vec3{
			rng.Float64() * 48,
			20 + rng.Float64()*10,
			rng.Float64() * 48,
		})
		vels[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * 0.4,
			-0.5,
			(rng.Float64() - 0.5) * 0.4,
		}
	}

	logger.Infof("simulating %d entities for %d ticks", len(all), *ticks)
	for t := 0; t < *ticks; t++ {
		entity.MoveAll(w, all, vels)
	}

	grounded, blocked := 0, 0
	for _, e := range all {
		if e.OnGround() {
			grounded++
		}
		if r := e.LastResult(); r != nil && (r.CollideX || r.CollideZ) {
			blocked++
		}
	}
	logger.WithFields(logrus.Fields{
		"grounded": grounded,
		"blocked":  blocked,
		"chunks":   w.CachedChunks(),
	}).Info("simulation finished")
	fmt.Printf("sample entity at %v\n", all[0].Position())
}

// buildTerrain lays a stone floor with a dirt rim, a wall across the middle
// and a slab staircase against it.
func buildTerrain(w *world.World) {
	w.Fill(cube.Pos{0, 0, 0}, cube.Pos{47, 0, 47}, block.Stone{})
	w.Fill(cube.Pos{0, 1, 0}, cube.Pos{47, 4, 0}, block.Dirt{})
	w.Fill(cube.Pos{0, 1, 47}, cube.Pos{47, 4, 47}, block.Dirt{})
	w.Fill(cube.Pos{0, 1, 0}, cube.Pos{0, 4, 47}, block.Dirt{})
	w.Fill(cube.Pos{47, 1, 0}, cube.Pos{47, 4, 47}, block.Dirt{})
	w.Fill(cube.Pos{24, 1, 0}, cube.Pos{24, 3, 47}, block.Stone{})
	for i := 0; i < 4; i++ {
		w.SetBlock(cube.Pos{23 - i, 1 + i/2, 10}, block.Slab{Top: i%2 == 1})
	}
}
