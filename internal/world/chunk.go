// Package world implements the chunked voxel store: an in-memory chunk
// cache owned by a single goroutine (Store, see store.go) backed by the
// SNG persistent single-file container (see sng.go).
package world

import "fmt"

// Block is a placed voxel. Only Air is defined for this revision, but
// the enumeration is kept open for a future palette.
type Block uint16

const (
	Air Block = 0
)

// chunkSide is the edge length of a chunk cube in blocks.
const chunkSide = 16

// blocksPerChunk is the number of Block entries in one chunk.
const blocksPerChunk = chunkSide * chunkSide * chunkSide

// Pos addresses a chunk by integer chunk coordinates.
type Pos struct {
	X, Y, Z int32
}

// Chunk is a 16x16x16 cube of blocks, addressed within the cube by
// (x, y, z) in [0, 16).
type Chunk struct {
	Pos    Pos
	blocks [blocksPerChunk]Block
}

// NewEmptyChunk returns a chunk at pos filled with Air.
func NewEmptyChunk(pos Pos) *Chunk {
	return &Chunk{Pos: pos}
}

// index computes the interior index i = (y*16+z)*16+x, panicking on an
// out-of-range coordinate the way spec.md's "local accessors reject
// out-of-range indices" requires.
func index(x, y, z int) int {
	if x < 0 || x >= chunkSide || y < 0 || y >= chunkSide || z < 0 || z >= chunkSide {
		panic(fmt.Sprintf("invalid position in chunk [%d,%d,%d]", x, y, z))
	}
	return (y*chunkSide+z)*chunkSide + x
}

// Get returns the block at the given local coordinates.
func (c *Chunk) Get(x, y, z int) Block {
	return c.blocks[index(x, y, z)]
}

// Put sets the block at the given local coordinates.
func (c *Chunk) Put(x, y, z int, b Block) {
	c.blocks[index(x, y, z)] = b
}

// Blocks returns the chunk's blocks in (y, z, x) disk order, the layout
// the SNG container writes verbatim.
func (c *Chunk) Blocks() [blocksPerChunk]Block { return c.blocks }

// SetBlocks replaces the chunk's blocks from (y, z, x)-ordered disk
// data.
func (c *Chunk) SetBlocks(blocks [blocksPerChunk]Block) { c.blocks = blocks }

// LoadState is either Unloaded (position known from the persistent
// index, contents not memory-resident) or Loaded, carrying the chunk.
type LoadState struct {
	Loaded bool
	Chunk  *Chunk
}
