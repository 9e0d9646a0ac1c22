package world

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Store is the single owner of a World value and its Syncer. Per
// spec.md §9's redesign, every request from a connection goroutine is
// funneled through a channel to the goroutine running Store.run,
// carrying its own reply channel — the chunk map and the Syncer are
// touched only by that goroutine, and no lock is held across file I/O.
// LoadChunk and GetChunk return pointers to the cached Chunk values;
// reads and writes made through those pointers are not serialized by the
// Store.
type Store struct {
	requests chan request
	log      *logrus.Entry
}

type opKind int

const (
	opLoadChunk opKind = iota
	opUnloadChunk
	opGetChunk
	opGetBlock
	opPutBlock
	opSave
	opFindAll
	opClose
)

type request struct {
	kind     opKind
	pos      Pos
	block    Block
	chunkPtr *Chunk
	// wx/wy/wz are world-scale coordinates for opGetBlock/opPutBlock.
	wx, wy, wz int64

	reply chan response
}

type response struct {
	chunk *Chunk
	block Block
	all   []Pos
	err   error
}

// world is the in-memory chunk-position -> load-state map. It is only
// ever touched by the owner goroutine.
type world struct {
	chunks map[Pos]LoadState
	sync   *Syncer
}

// NewStore opens path as the SNG backing file, primes the in-memory map
// from its index, and starts the owner goroutine. Callers must call
// Close when done.
func NewStore(path string, log *logrus.Entry) (*Store, error) {
	syncer, err := OpenSyncer(path)
	if err != nil {
		return nil, err
	}

	w := &world{chunks: make(map[Pos]LoadState), sync: syncer}
	for _, p := range syncer.FindAll() {
		w.chunks[p] = LoadState{Loaded: false}
	}

	s := &Store{requests: make(chan request, 64), log: log}
	go s.run(w)
	return s, nil
}

func (s *Store) run(w *world) {
	for req := range s.requests {
		var resp response
		switch req.kind {
		case opLoadChunk:
			resp.chunk, resp.err = w.loadChunk(req.pos)
		case opUnloadChunk:
			w.unloadChunk(req.pos)
		case opGetChunk:
			resp.chunk, resp.err = w.getChunk(req.pos)
		case opGetBlock:
			resp.block, resp.err = w.getBlock(req.wx, req.wy, req.wz)
		case opPutBlock:
			resp.err = w.putBlock(req.wx, req.wy, req.wz, req.block)
		case opSave:
			resp.err = w.sync.Save(req.chunkPtr)
		case opFindAll:
			resp.all = w.sync.FindAll()
		case opClose:
			resp.err = w.sync.Close()
			req.reply <- resp
			return
		}
		if resp.err != nil && s.log != nil {
			s.log.WithError(resp.err).Error("world store request failed")
		}
		req.reply <- resp
	}
}

func (w *world) loadChunk(pos Pos) (*Chunk, error) {
	state, exists := w.chunks[pos]
	if !exists || !state.Loaded {
		chunk, err := w.sync.Load(pos.X, pos.Y, pos.Z)
		if err != nil {
			return nil, err
		}
		w.chunks[pos] = LoadState{Loaded: true, Chunk: chunk}
		return chunk, nil
	}
	return state.Chunk, nil
}

func (w *world) unloadChunk(pos Pos) {
	if _, exists := w.chunks[pos]; exists {
		w.chunks[pos] = LoadState{Loaded: false}
	}
}

// getChunk must return a Loaded chunk. A position absent entirely gets a
// freshly synthesized empty chunk, stored as Loaded. A position present
// but Unloaded is a programmer error: the caller should have gone
// through LoadChunk first.
func (w *world) getChunk(pos Pos) (*Chunk, error) {
	state, exists := w.chunks[pos]
	if !exists {
		chunk := NewEmptyChunk(pos)
		w.chunks[pos] = LoadState{Loaded: true, Chunk: chunk}
		return chunk, nil
	}
	if !state.Loaded {
		return nil, fmt.Errorf("get_chunk on unloaded position %v", pos)
	}
	return state.Chunk, nil
}

// worldToChunk projects a world-scale coordinate onto a chunk coordinate
// and the local index within it. Go's >> on a signed integer is an
// arithmetic shift, so it already floors toward negative infinity,
// matching floor(w/16).
func worldToChunk(w int64) (chunkCoord int32, local int) {
	chunkCoord = int32(w >> 4)
	local = int(((w % 16) + 16) % 16)
	return chunkCoord, local
}

func (w *world) getBlock(x, y, z int64) (Block, error) {
	cx, lx := worldToChunk(x)
	cy, ly := worldToChunk(y)
	cz, lz := worldToChunk(z)
	chunk, err := w.getChunk(Pos{X: cx, Y: cy, Z: cz})
	if err != nil {
		return Air, err
	}
	return chunk.Get(lx, ly, lz), nil
}

func (w *world) putBlock(x, y, z int64, b Block) error {
	cx, lx := worldToChunk(x)
	cy, ly := worldToChunk(y)
	cz, lz := worldToChunk(z)
	chunk, err := w.getChunk(Pos{X: cx, Y: cy, Z: cz})
	if err != nil {
		return err
	}
	chunk.Put(lx, ly, lz, b)
	return nil
}

func (s *Store) do(req request) response {
	req.reply = make(chan response, 1)
	s.requests <- req
	return <-req.reply
}

// LoadChunk loads the chunk at pos from disk if absent or Unloaded, and
// returns it.
func (s *Store) LoadChunk(pos Pos) (*Chunk, error) {
	resp := s.do(request{kind: opLoadChunk, pos: pos})
	return resp.chunk, resp.err
}

// UnloadChunk marks pos Unloaded, dropping its in-memory contents. A
// no-op if pos is absent.
func (s *Store) UnloadChunk(pos Pos) {
	s.do(request{kind: opUnloadChunk, pos: pos})
}

// GetChunk returns a Loaded chunk at pos, synthesizing an empty one if
// pos was never seen.
func (s *Store) GetChunk(pos Pos) (*Chunk, error) {
	resp := s.do(request{kind: opGetChunk, pos: pos})
	return resp.chunk, resp.err
}

// GetBlock projects world coordinates onto a chunk and returns the block
// there.
func (s *Store) GetBlock(x, y, z int64) (Block, error) {
	resp := s.do(request{kind: opGetBlock, wx: x, wy: y, wz: z})
	return resp.block, resp.err
}

// PutBlock projects world coordinates onto a chunk and sets the block
// there.
func (s *Store) PutBlock(x, y, z int64, b Block) error {
	resp := s.do(request{kind: opPutBlock, wx: x, wy: y, wz: z, block: b})
	return resp.err
}

// Save persists chunk through the store's syncer.
func (s *Store) Save(chunk *Chunk) error {
	resp := s.do(request{kind: opSave, chunkPtr: chunk})
	return resp.err
}

// FindAll enumerates every chunk position the syncer has an index for.
func (s *Store) FindAll() []Pos {
	resp := s.do(request{kind: opFindAll})
	return resp.all
}

// Close stops the owner goroutine and releases the syncer's file handle.
func (s *Store) Close() error {
	resp := s.do(request{kind: opClose})
	close(s.requests)
	return resp.err
}
