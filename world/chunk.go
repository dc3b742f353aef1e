package world

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

const (
	// ChunkSize is the horizontal extent of a chunk on both axes.
	ChunkSize = 16
	// MinY and MaxY bound the vertical range of the world. Blocks outside
	// of it read as air.
	MinY = 0
	MaxY = 256
)

// Chunk is a dense 16x16 column of block runtime IDs. The zero value is a
// chunk filled with air.
type Chunk struct {
	blocks [ChunkSize * ChunkSize * (MaxY - MinY)]uint32
}

func chunkIndex(x, y, z int) int {
	return ((y-MinY)*ChunkSize+z)*ChunkSize + x
}

// At returns the runtime ID at chunk-local x/z and world y.
func (c *Chunk) At(x, y, z int) uint32 {
	return c.blocks[chunkIndex(x, y, z)]
}

// Set sets the runtime ID at chunk-local x/z and world y.
func (c *Chunk) Set(x, y, z int, rid uint32) {
	c.blocks[chunkIndex(x, y, z)] = rid
}

// Clone returns a copy of the chunk.
func (c *Chunk) Clone() *Chunk {
	n := *c
	return &n
}

// Hash returns the content hash of the chunk, used to deduplicate identical
// chunks across the world.
func (c *Chunk) Hash() uint64 {
	h := xxh3.New()
	var buf [4 * ChunkSize]byte
	for i := 0; i < len(c.blocks); i += ChunkSize {
		for j := 0; j < ChunkSize; j++ {
			binary.LittleEndian.PutUint32(buf[j*4:], c.blocks[i+j])
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}
