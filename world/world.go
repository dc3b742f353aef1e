package world

import (
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/sasha-s/go-deadlock"
	"github.com/voxphys/voxphys/phys"
	"github.com/voxphys/voxphys/world/block"
)

// ChunkPos identifies a chunk column by its chunk coordinates.
type ChunkPos [2]int32

// World is a chunked block store. Any position outside the loaded chunks or
// the vertical range reads as air, so movement resolution is never blocked
// by missing data. Chunks added through AddChunk are deduplicated by content
// and copied on first write.
//
// World implements phys.BlockSource. Reads may run concurrently; writes
// take the exclusive lock.
type World struct {
	chunks map[ChunkPos]*worldChunk
	cache  *chunkCache
	log    *slog.Logger

	deadlock.RWMutex
}

type worldChunk struct {
	c      *Chunk
	hash   uint64
	shared bool
}

// defaultCacheCap bounds the number of distinct chunk contents kept for
// deduplication.
const defaultCacheCap = 4096

// New creates an empty world that logs through the given logger.
func New(log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	return &World{
		chunks: make(map[ChunkPos]*worldChunk),
		cache:  newChunkCache(defaultCacheCap),
		log:    log,
	}
}

// ChunkPosOf returns the chunk column containing the given block position.
func ChunkPosOf(pos cube.Pos) ChunkPos {
	return ChunkPos{int32(pos.X() >> 4), int32(pos.Z() >> 4)}
}

// AddChunk inserts a chunk column, replacing any previous one at that
// position. The chunk is deduplicated against identical contents already in
// the world; callers must not mutate c after handing it over.
func (w *World) AddChunk(pos ChunkPos, c *Chunk) {
	w.Lock()
	defer w.Unlock()

	if old, ok := w.chunks[pos]; ok && old.shared {
		w.cache.release(old.hash)
	}
	canonical, hash := w.cache.fetch(c)
	if canonical != c {
		w.log.Debug("chunk deduplicated", "pos", pos, "hash", hash)
	}
	w.chunks[pos] = &worldChunk{c: canonical, hash: hash, shared: true}
}

// IsLoaded reports whether a chunk column is present.
func (w *World) IsLoaded(pos ChunkPos) bool {
	w.RLock()
	defer w.RUnlock()
	_, ok := w.chunks[pos]
	return ok
}

// Block returns the block at pos. Unloaded or out-of-range positions read as
// air.
func (w *World) Block(pos cube.Pos) phys.Block {
	if pos.Y() < MinY || pos.Y() >= MaxY {
		return block.Air{}
	}

	w.RLock()
	defer w.RUnlock()

	wc, ok := w.chunks[ChunkPosOf(pos)]
	if !ok {
		return block.Air{}
	}
	rid := wc.c.At(pos.X()&(ChunkSize-1), pos.Y(), pos.Z()&(ChunkSize-1))
	return block.ByRuntimeID(rid)
}

// SetBlock sets the block at pos, creating the containing chunk if needed.
// Out-of-range positions are ignored. A chunk whose contents are shared with
// other positions is copied before the write.
func (w *World) SetBlock(pos cube.Pos, b block.Block) {
	if pos.Y() < MinY || pos.Y() >= MaxY {
		return
	}
	rid, ok := block.RuntimeID(b)
	if !ok {
		w.log.Error("set of unregistered block", "name", b.Name())
		return
	}

	w.Lock()
	defer w.Unlock()

	cp := ChunkPosOf(pos)
	wc, ok := w.chunks[cp]
	if !ok {
		wc = &worldChunk{c: &Chunk{}}
		w.chunks[cp] = wc
	} else if wc.shared {
		w.cache.release(wc.hash)
		wc.c = wc.c.Clone()
		wc.shared = false
	}
	wc.c.Set(pos.X()&(ChunkSize-1), pos.Y(), pos.Z()&(ChunkSize-1), rid)
}

// Fill sets every block in the inclusive box between min and max.
func (w *World) Fill(min, max cube.Pos, b block.Block) {
	for y := min.Y(); y <= max.Y(); y++ {
		for x := min.X(); x <= max.X(); x++ {
			for z := min.Z(); z <= max.Z(); z++ {
				w.SetBlock(cube.Pos{x, y, z}, b)
			}
		}
	}
}

// CachedChunks returns the number of distinct chunk contents currently held.
func (w *World) CachedChunks() int {
	w.RLock()
	defer w.RUnlock()
	return w.cache.len()
}
