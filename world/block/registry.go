package block

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// The registry assigns every block type a dense runtime ID used by chunk
// storage, keyed off the xxh3 hash of its name. Air is always runtime ID 0.
var (
	registered []Block
	ridByHash  = map[uint64]uint32{}
	ridByName  = map[string]uint32{}
)

func init() {
	Register(Air{})
	Register(Stone{})
	Register(Dirt{})
	Register(Slab{})
	Register(Slab{Top: true})
}

// Hash returns the stable hash of a block's name, used as its identity in
// chunk content hashing.
func Hash(b Block) uint64 {
	return xxh3.HashString(b.Name())
}

// Register adds a block type to the registry and assigns it a runtime ID.
// Registering the same name twice panics: names are the registry's identity.
func Register(b Block) uint32 {
	h := Hash(b)
	if _, ok := ridByHash[h]; ok {
		panic(fmt.Errorf("block %q registered twice", b.Name()))
	}
	rid := uint32(len(registered))
	registered = append(registered, b)
	ridByHash[h] = rid
	ridByName[b.Name()] = rid
	return rid
}

// RuntimeID returns the runtime ID of a registered block.
func RuntimeID(b Block) (uint32, bool) {
	rid, ok := ridByHash[Hash(b)]
	return rid, ok
}

// ByRuntimeID returns the block registered under the given runtime ID, or
// Air if the ID is unknown.
func ByRuntimeID(rid uint32) Block {
	if int(rid) >= len(registered) {
		return Air{}
	}
	return registered[rid]
}

// ByName returns the block registered under the given name.
func ByName(name string) (Block, bool) {
	rid, ok := ridByName[name]
	if !ok {
		return nil, false
	}
	return registered[rid], true
}
