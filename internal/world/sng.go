package world

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// sngMagic is the 4-byte header every SNG file starts with.
var sngMagic = [4]byte{'S', 'N', 'G', 0}

// recordBlocksBytes is the on-disk size of one chunk's block array:
// 4096 entries at 2 bytes each.
const recordBlocksBytes = blocksPerChunk * 2

// recordSize is one full chunk record: three big-endian i32 coordinates
// plus the block array.
const recordSize = 4 + 4 + 4 + recordBlocksBytes

// headerSize is the magic plus the u64 chunk count.
const headerSize = 4 + 8

// Syncer persists chunks to a single random-access file. It is exclusively
// owned by the Store that constructed it (see store.go) — nothing else
// touches the file handle.
type Syncer struct {
	file    *os.File
	index   map[Pos]int64 // chunk position -> start offset of its record (at the cx field)
	records uint64
}

// OpenSyncer opens path, creating it with an empty SNG header if it does
// not exist, then scans every existing record into the in-memory index.
func OpenSyncer(path string) (*Syncer, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createEmptySNG(path); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open SNG file %s: %w", path, err)
	}

	s := &Syncer{file: f, index: make(map[Pos]int64)}
	if err := s.scan(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func createEmptySNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create SNG file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(sngMagic[:]); err != nil {
		return err
	}
	var countBytes [8]byte
	binary.BigEndian.PutUint64(countBytes[:], 0)
	_, err = f.Write(countBytes[:])
	return err
}

// scan reads the header and every chunk record, recording each record's
// start offset in the index. A magic mismatch is fatal.
func (s *Syncer) scan() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var magic [4]byte
	if _, err := io.ReadFull(s.file, magic[:]); err != nil {
		return fmt.Errorf("read SNG header: %w", err)
	}
	if magic != sngMagic {
		return fmt.Errorf("invalid SNG magic %q", magic)
	}

	var countBytes [8]byte
	if _, err := io.ReadFull(s.file, countBytes[:]); err != nil {
		return fmt.Errorf("read SNG chunk count: %w", err)
	}
	count := binary.BigEndian.Uint64(countBytes[:])

	for i := uint64(0); i < count; i++ {
		start, err := s.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}

		var coords [12]byte
		if _, err := io.ReadFull(s.file, coords[:]); err != nil {
			return fmt.Errorf("read SNG record %d coordinates: %w", i, err)
		}
		pos := Pos{
			X: int32(binary.BigEndian.Uint32(coords[0:4])),
			Y: int32(binary.BigEndian.Uint32(coords[4:8])),
			Z: int32(binary.BigEndian.Uint32(coords[8:12])),
		}
		s.index[pos] = start

		if _, err := s.file.Seek(int64(recordBlocksBytes), io.SeekCurrent); err != nil {
			return err
		}
	}

	s.records = count
	return nil
}

// Save writes chunk to disk: overwrite in place if its position is
// already indexed, otherwise append and grow the index. chunk_count at
// offset 4 is kept in sync with the number of records on disk.
func (s *Syncer) Save(chunk *Chunk) error {
	start, exists := s.index[chunk.Pos]
	if exists {
		if _, err := s.file.Seek(start, io.SeekStart); err != nil {
			return err
		}
	} else {
		end, err := s.file.Seek(0, io.SeekEnd)
		if err != nil {
			return err
		}
		start = end
		s.index[chunk.Pos] = start
		s.records++
	}

	var coords [12]byte
	binary.BigEndian.PutUint32(coords[0:4], uint32(chunk.Pos.X))
	binary.BigEndian.PutUint32(coords[4:8], uint32(chunk.Pos.Y))
	binary.BigEndian.PutUint32(coords[8:12], uint32(chunk.Pos.Z))
	if _, err := s.file.Write(coords[:]); err != nil {
		return err
	}

	blocks := chunk.Blocks()
	var blockBytes [recordBlocksBytes]byte
	for i, b := range blocks {
		binary.BigEndian.PutUint16(blockBytes[i*2:i*2+2], uint16(b))
	}
	if _, err := s.file.Write(blockBytes[:]); err != nil {
		return err
	}

	if _, err := s.file.Seek(4, io.SeekStart); err != nil {
		return err
	}
	var countBytes [8]byte
	binary.BigEndian.PutUint64(countBytes[:], s.records)
	if _, err := s.file.Write(countBytes[:]); err != nil {
		return err
	}

	return s.file.Sync()
}

// Load reads the chunk at (x, y, z) from disk. A position with no index
// entry yields a freshly generated empty chunk (world generation is out
// of scope — new chunks are all-Air).
func (s *Syncer) Load(x, y, z int32) (*Chunk, error) {
	pos := Pos{X: x, Y: y, Z: z}
	start, ok := s.index[pos]
	if !ok {
		return NewEmptyChunk(pos), nil
	}

	if _, err := s.file.Seek(start+12, io.SeekStart); err != nil {
		return nil, err
	}

	var blockBytes [recordBlocksBytes]byte
	if _, err := io.ReadFull(s.file, blockBytes[:]); err != nil {
		return nil, fmt.Errorf("read SNG blocks for %v: %w", pos, err)
	}

	chunk := NewEmptyChunk(pos)
	var blocks [blocksPerChunk]Block
	for i := range blocks {
		blocks[i] = Block(binary.BigEndian.Uint16(blockBytes[i*2 : i*2+2]))
	}
	chunk.SetBlocks(blocks)
	return chunk, nil
}

// FindAll enumerates every indexed chunk position.
func (s *Syncer) FindAll() []Pos {
	positions := make([]Pos, 0, len(s.index))
	for p := range s.index {
		positions = append(positions, p)
	}
	return positions
}

// Close releases the underlying file handle.
func (s *Syncer) Close() error { return s.file.Close() }
