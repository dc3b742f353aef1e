package world

import (
	"github.com/elliotchance/orderedmap/v2"
)

// chunkCache deduplicates identical chunks by content hash so that worlds
// built from repeated terrain (flat floors, generated patterns) share
// storage. Entries are kept in insertion order; when the cache grows past
// its cap, the oldest unreferenced entries are evicted first.
type chunkCache struct {
	entries *orderedmap.OrderedMap[uint64, *cachedChunk]
	cap     int
}

type cachedChunk struct {
	c    *Chunk
	refs int
}

func newChunkCache(cap int) *chunkCache {
	return &chunkCache{entries: orderedmap.NewOrderedMap[uint64, *cachedChunk](), cap: cap}
}

// fetch returns the canonical chunk for c's contents, registering it if the
// contents are new, and takes a reference on it.
func (cc *chunkCache) fetch(c *Chunk) (*Chunk, uint64) {
	h := c.Hash()
	if e, ok := cc.entries.Get(h); ok {
		e.refs++
		return e.c, h
	}
	cc.evict()
	cc.entries.Set(h, &cachedChunk{c: c, refs: 1})
	return c, h
}

// release drops a reference taken by fetch.
func (cc *chunkCache) release(h uint64) {
	if e, ok := cc.entries.Get(h); ok && e.refs > 0 {
		e.refs--
	}
}

// evict removes the oldest unreferenced entries until the cache fits its cap
// again. Referenced entries are never evicted.
func (cc *chunkCache) evict() {
	for el := cc.entries.Front(); el != nil && cc.entries.Len() >= cc.cap; {
		next := el.Next()
		if el.Value.refs == 0 {
			cc.entries.Delete(el.Key)
		}
		el = next
	}
}

// len returns the number of distinct chunks held.
func (cc *chunkCache) len() int {
	return cc.entries.Len()
}
