package filesystem

import (
	"fmt"

	"github.com/PengtuLi/SimpleFS/util/bitmap"
)

// buildFreeBitmap derives the free-block bitmap from scratch by walking the
// on-disk inode table: the superblock and inode-table blocks are always in
// use, and every other block is in use iff some valid inode references it
// directly or through its indirect block.
func (fs *FileSystem) buildFreeBitmap() (*bitmap.Bitmap, error) {
	bm := bitmap.NewBits(int(fs.meta.Blocks))

	if err := bm.Set(0); err != nil {
		return nil, err
	}
	for b := uint32(1); b <= fs.meta.InodeBlocks; b++ {
		if err := bm.Set(int(b)); err != nil {
			return nil, fmt.Errorf("filesystem: marking inode-table block %d: %w", b, err)
		}
	}

	buf := make([]byte, BlockSize)
	ptrBuf := make([]byte, BlockSize)
	for blockIdx := uint32(1); blockIdx <= fs.meta.InodeBlocks; blockIdx++ {
		if _, err := fs.disk.ReadBlock(blockIdx, buf); err != nil {
			return nil, fmt.Errorf("filesystem: reading inode block %d: %w", blockIdx, err)
		}
		block := inodeBlockFromBytes(buf)
		for _, ino := range block {
			if ino.Valid == 0 {
				continue
			}
			for _, d := range ino.Direct {
				if d == 0 {
					continue
				}
				if err := bm.Set(int(d)); err != nil {
					return nil, fmt.Errorf("filesystem: marking data block %d: %w", d, err)
				}
			}
			if ino.Indirect == 0 {
				continue
			}
			if err := bm.Set(int(ino.Indirect)); err != nil {
				return nil, fmt.Errorf("filesystem: marking indirect block %d: %w", ino.Indirect, err)
			}
			if _, err := fs.disk.ReadBlock(ino.Indirect, ptrBuf); err != nil {
				return nil, fmt.Errorf("filesystem: reading indirect block %d: %w", ino.Indirect, err)
			}
			for _, p := range pointerBlockFromBytes(ptrBuf) {
				if p == 0 {
					continue
				}
				if err := bm.Set(int(p)); err != nil {
					return nil, fmt.Errorf("filesystem: marking data block %d: %w", p, err)
				}
			}
		}
	}
	return bm, nil
}

// assignBlock claims the first free block, zero-fills it on disk (so a block
// that ends up used as an indirect block starts as an all-zero pointer
// array), and returns its index.
func (fs *FileSystem) assignBlock() (uint32, error) {
	idx := fs.free.FirstFree(0)
	if idx < 0 {
		return 0, ErrNoFreeBlocks
	}
	if err := fs.free.Set(idx); err != nil {
		return 0, err
	}
	zero := make([]byte, BlockSize)
	if _, err := fs.disk.WriteBlock(uint32(idx), zero); err != nil {
		_ = fs.free.Clear(idx)
		return 0, fmt.Errorf("filesystem: zeroing new block %d: %w", idx, err)
	}
	return uint32(idx), nil
}

// unassignBlock marks a block free. It is infallible: the in-memory bitmap
// entry is simply cleared.
func (fs *FileSystem) unassignBlock(b uint32) {
	_ = fs.free.Clear(int(b))
}
