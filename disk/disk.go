// Package disk implements the block-addressable disk emulator that the
// filesystem engine is built on top of: a backing file presented as a fixed
// number of fixed-size blocks, with no caching and no partial-block I/O.
package disk

import (
	"errors"
	"fmt"
	"io"

	"github.com/PengtuLi/SimpleFS/backend"
	"github.com/PengtuLi/SimpleFS/backend/file"
)

// BlockSize is the fixed unit of disk I/O; every read and write moves exactly
// this many bytes.
const BlockSize = 4096

// Failure is the sentinel byte count returned alongside an error from ReadBlock
// and WriteBlock, mirroring the emulator's original DISK_FAILURE return value.
const Failure = -1

var (
	// ErrNilDisk is returned by a nil *Disk.
	ErrNilDisk = errors.New("disk: nil disk")
	// ErrClosed is returned once the disk has been closed.
	ErrClosed = errors.New("disk: descriptor not open")
	// ErrOutOfRange is returned for a block index at or beyond Blocks().
	ErrOutOfRange = errors.New("disk: block index out of range")
	// ErrShortBuffer is returned when the caller's buffer cannot hold a full block.
	ErrShortBuffer = errors.New("disk: buffer shorter than one block")
)

// Disk is an array-of-blocks view over a backing file. It tracks the number
// of block reads and writes it has served since it was opened.
type Disk struct {
	backend backend.Storage
	blocks  uint32
	open    bool

	reads  uint64
	writes uint64
}

// Open opens the backing file at path, creating it if necessary, and presents
// it as blocks fixed-size blocks. If the file's current length does not equal
// blocks*BlockSize, it is truncated to exactly that size, growing or shrinking
// it as needed.
func Open(path string, blocks uint32) (*Disk, error) {
	if blocks == 0 {
		return nil, fmt.Errorf("disk: must request at least one block")
	}
	store, err := file.OpenOrCreate(path)
	if err != nil {
		return nil, err
	}
	d, err := attach(store, blocks, false)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return d, nil
}

// OpenReadOnly opens an existing backing file without resizing it. It is meant
// for read-only inspection (fs_debug) of a volume that must not be mutated by
// the act of looking at it.
func OpenReadOnly(path string) (*Disk, error) {
	store, err := file.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	info, err := store.Stat()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("disk: could not stat %s: %w", path, err)
	}
	blocks := uint32(info.Size() / BlockSize)
	return &Disk{backend: store, blocks: blocks, open: true}, nil
}

// Attach wraps an already-open backend.Storage as a Disk, resizing it if its
// current length does not match blocks*BlockSize. Open is the normal entry
// point for a real file; Attach exists so callers (and tests) can hand the
// emulator any backend.Storage implementation, such as an in-memory double.
func Attach(store backend.Storage, blocks uint32) (*Disk, error) {
	if blocks == 0 {
		return nil, fmt.Errorf("disk: must request at least one block")
	}
	return attach(store, blocks, false)
}

func attach(store backend.Storage, blocks uint32, readOnly bool) (*Disk, error) {
	if readOnly {
		return &Disk{backend: store, blocks: blocks, open: true}, nil
	}
	info, err := store.Stat()
	if err != nil {
		return nil, fmt.Errorf("disk: could not stat backing file: %w", err)
	}
	want := int64(blocks) * BlockSize
	if info.Size() != want {
		osFile, err := store.Sys()
		if err != nil {
			return nil, fmt.Errorf("disk: backing file does not support resizing: %w", err)
		}
		if err := osFile.Truncate(want); err != nil {
			return nil, fmt.Errorf("disk: could not resize backing file to %d bytes: %w", want, err)
		}
	}
	return &Disk{backend: store, blocks: blocks, open: true}, nil
}

// Blocks reports the total number of blocks addressable on this disk.
func (d *Disk) Blocks() uint32 {
	if d == nil {
		return 0
	}
	return d.blocks
}

// Reads reports the number of successful block reads served since Open.
func (d *Disk) Reads() uint64 {
	if d == nil {
		return 0
	}
	return d.reads
}

// Writes reports the number of successful block writes served since Open.
func (d *Disk) Writes() uint64 {
	if d == nil {
		return 0
	}
	return d.writes
}

// Close releases the backing file and prints the disk's lifetime read and
// write counts to standard output. The emulator performs no caching, so there
// is nothing to flush.
func (d *Disk) Close() error {
	if d == nil || !d.open {
		return nil
	}
	fmt.Printf("%d disk block reads\n", d.reads)
	fmt.Printf("%d disk block writes\n", d.writes)
	d.open = false
	return d.backend.Close()
}

// ReadBlock reads exactly BlockSize bytes from block into buf[:BlockSize].
// It returns BlockSize on success. Sanity failures (nil disk, closed disk,
// out-of-range block, undersized buffer) return Failure without touching the
// backing file or the read counter.
func (d *Disk) ReadBlock(block uint32, buf []byte) (int, error) {
	if err := d.sanity(block, buf); err != nil {
		return Failure, err
	}
	n, err := d.backend.ReadAt(buf[:BlockSize], int64(block)*BlockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return Failure, fmt.Errorf("disk: read block %d: %w", block, err)
	}
	if n != BlockSize {
		return Failure, fmt.Errorf("disk: short read of block %d: got %d of %d bytes", block, n, BlockSize)
	}
	d.reads++
	return BlockSize, nil
}

// WriteBlock writes exactly BlockSize bytes from buf[:BlockSize] to block.
// It returns BlockSize on success, Failure (without incrementing the write
// counter) on any sanity or I/O failure.
func (d *Disk) WriteBlock(block uint32, buf []byte) (int, error) {
	if err := d.sanity(block, buf); err != nil {
		return Failure, err
	}
	wf, err := d.backend.Writable()
	if err != nil {
		return Failure, err
	}
	n, err := wf.WriteAt(buf[:BlockSize], int64(block)*BlockSize)
	if err != nil {
		return Failure, fmt.Errorf("disk: write block %d: %w", block, err)
	}
	if n != BlockSize {
		return Failure, fmt.Errorf("disk: short write of block %d: wrote %d of %d bytes", block, n, BlockSize)
	}
	d.writes++
	return BlockSize, nil
}

func (d *Disk) sanity(block uint32, buf []byte) error {
	if d == nil {
		return ErrNilDisk
	}
	if !d.open {
		return ErrClosed
	}
	if block >= d.blocks {
		return ErrOutOfRange
	}
	if buf == nil || len(buf) < BlockSize {
		return ErrShortBuffer
	}
	return nil
}
