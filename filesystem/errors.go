package filesystem

import "errors"

var (
	// ErrAlreadyMounted is returned by Mount and Format when this FileSystem
	// already owns a mounted disk.
	ErrAlreadyMounted = errors.New("filesystem: already mounted")
	// ErrNotMounted is returned by any operation that requires a mounted disk.
	ErrNotMounted = errors.New("filesystem: not mounted")
	// ErrBadMagic is returned by Mount when block 0 does not carry MagicNumber.
	ErrBadMagic = errors.New("filesystem: bad superblock magic")
	// ErrLayoutMismatch is returned by Mount when the superblock's recorded
	// geometry does not match the mounted disk or cannot be reproduced from it.
	ErrLayoutMismatch = errors.New("filesystem: superblock geometry mismatch")
	// ErrInvalidInode is returned by operations addressing an inode number
	// that is out of range or currently not valid.
	ErrInvalidInode = errors.New("filesystem: invalid inode")
	// ErrNoFreeInodes is returned by Create when the inode table is full.
	ErrNoFreeInodes = errors.New("filesystem: no free inodes")
	// ErrNoFreeBlocks is returned by assignBlock when the disk is full.
	ErrNoFreeBlocks = errors.New("filesystem: no free blocks")
	// ErrOffsetPastEnd is returned by Read when offset is at or beyond the
	// inode's recorded size.
	ErrOffsetPastEnd = errors.New("filesystem: read offset past end of file")
	// ErrFileTooLarge is returned by Write when offset would address a block
	// beyond the direct-plus-indirect addressing range.
	ErrFileTooLarge = errors.New("filesystem: write would exceed maximum file size")
	// ErrIndirectFull is returned by Write when an inode's indirect block has
	// no free pointer slot left.
	ErrIndirectFull = errors.New("filesystem: indirect block has no free pointer slot")
)
