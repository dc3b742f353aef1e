package block

import (
	"github.com/voxphys/voxphys/phys"
	"github.com/voxphys/voxphys/world/blockmodel"
)

// Block is a voxel type known to the registry. Blocks are stateless values:
// two blocks of the same type compare equal.
type Block interface {
	phys.Block
	// Name returns the namespaced identifier of the block.
	Name() string
}

// Air is the default block of any position that holds nothing, including
// unloaded ones.
type Air struct{}

func (Air) Name() string      { return "voxphys:air" }
func (Air) Solid() bool       { return false }
func (Air) Model() phys.Shape { return blockmodel.Empty{} }

// Stone is a plain full solid block.
type Stone struct{}

func (Stone) Name() string      { return "voxphys:stone" }
func (Stone) Solid() bool       { return true }
func (Stone) Model() phys.Shape { return blockmodel.Solid{} }

// Dirt is a plain full solid block.
type Dirt struct{}

func (Dirt) Name() string      { return "voxphys:dirt" }
func (Dirt) Solid() bool       { return true }
func (Dirt) Model() phys.Shape { return blockmodel.Solid{} }

// Slab is a half block occupying the bottom or top half of its cell.
type Slab struct {
	Top bool
}

func (s Slab) Name() string {
	if s.Top {
		return "voxphys:slab_top"
	}
	return "voxphys:slab"
}
func (s Slab) Solid() bool       { return true }
func (s Slab) Model() phys.Shape { return blockmodel.Slab{Top: s.Top} }
