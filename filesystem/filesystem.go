package filesystem

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/PengtuLi/SimpleFS/disk"
	"github.com/PengtuLi/SimpleFS/util/bitmap"
)

// FileSystem is the mount-time state of a SimpleFS volume: the disk it
// exclusively owns while mounted, a copy of the on-disk superblock, and the
// free-block bitmap derived from walking the inode table. A zero-value
// FileSystem is unmounted and ready for Format or Mount.
type FileSystem struct {
	disk *disk.Disk
	meta superblock
	free *bitmap.Bitmap
}

// New returns an unmounted FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// Mounted reports whether fs currently owns a mounted disk.
func (fs *FileSystem) Mounted() bool {
	return fs.disk != nil
}

// Format writes a fresh, empty SimpleFS volume to d: a superblock sized for
// d's block count, and every remaining block zeroed so every inode starts
// out invalid. It refuses if fs currently has a disk mounted.
func (fs *FileSystem) Format(d *disk.Disk) error {
	if fs.Mounted() {
		return ErrAlreadyMounted
	}
	meta := newSuperblock(d.Blocks())
	if _, err := d.WriteBlock(0, meta.toBytes()); err != nil {
		return fmt.Errorf("filesystem: writing superblock: %w", err)
	}
	zero := make([]byte, BlockSize)
	for b := uint32(1); b < d.Blocks(); b++ {
		if _, err := d.WriteBlock(b, zero); err != nil {
			return fmt.Errorf("filesystem: zeroing block %d: %w", b, err)
		}
	}
	log.WithFields(logrus.Fields{
		"blocks":       meta.Blocks,
		"inode_blocks": meta.InodeBlocks,
		"inodes":       meta.Inodes,
	}).Debug("formatted volume")
	return nil
}

// Mount validates d's superblock and, on success, takes exclusive ownership
// of d and materializes the free-block bitmap. It refuses a disk whose
// on-disk geometry does not match what Format would have produced for its
// block count.
func (fs *FileSystem) Mount(d *disk.Disk) error {
	if fs.Mounted() {
		return ErrAlreadyMounted
	}
	buf := make([]byte, BlockSize)
	if _, err := d.ReadBlock(0, buf); err != nil {
		return fmt.Errorf("filesystem: reading superblock: %w", err)
	}
	meta := superblockFromBytes(buf)
	if meta.MagicNumber != MagicNumber {
		return ErrBadMagic
	}
	if meta.Blocks != d.Blocks() {
		return ErrLayoutMismatch
	}
	if meta.InodeBlocks != ceilDiv(meta.Blocks, 10) {
		return ErrLayoutMismatch
	}
	if meta.Inodes != meta.InodeBlocks*InodesPerBlock {
		return ErrLayoutMismatch
	}

	if err := d.Lock(); err != nil {
		return fmt.Errorf("filesystem: %w", err)
	}

	fs.disk = d
	fs.meta = meta
	free, err := fs.buildFreeBitmap()
	if err != nil {
		fs.disk = nil
		_ = d.Unlock()
		return err
	}
	fs.free = free
	log.WithFields(logrus.Fields{
		"volume_id": meta.VolumeID,
		"blocks":    meta.Blocks,
	}).Debug("mounted volume")
	return nil
}

// Unmount releases the free-block bitmap and fs's claim on its disk. It does
// not flush: every mutating operation writes through to the disk as it
// happens, so there is nothing buffered to flush.
func (fs *FileSystem) Unmount() {
	if fs.disk != nil {
		_ = fs.disk.Unlock()
	}
	fs.disk = nil
	fs.free = nil
	fs.meta = superblock{}
}
