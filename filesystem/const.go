// Package filesystem implements the SimpleFS on-disk layout and the engine
// that maintains it: a tagged superblock, a contiguous inode table, and
// direct plus single-indirect data block addressing, all built on top of
// github.com/PengtuLi/SimpleFS/disk.
package filesystem

import "github.com/PengtuLi/SimpleFS/disk"

const (
	// MagicNumber identifies a block 0 as a valid SimpleFS superblock.
	MagicNumber uint32 = 0xf0f03410

	// BlockSize is the fixed size of every block, re-exported from disk for
	// callers that only import filesystem.
	BlockSize = disk.BlockSize

	// InodeSize is the on-disk size of one inode record, in bytes.
	InodeSize = 32

	// InodesPerBlock is how many inodes are packed into one inode-table block.
	InodesPerBlock = BlockSize / InodeSize

	// PointersPerInode is the number of direct block pointers carried in an inode.
	PointersPerInode = 5

	// PointersPerBlock is how many 32-bit block pointers fit in an indirect block.
	PointersPerBlock = BlockSize / 4

	// MaxFileBlocks is the largest number of data blocks a single inode can
	// address: its direct pointers plus one full indirect block.
	MaxFileBlocks = PointersPerInode + PointersPerBlock

	// MaxFileSize is the largest logical size, in bytes, an inode can carry.
	MaxFileSize = MaxFileBlocks * BlockSize
)

// ceilDiv returns ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}
