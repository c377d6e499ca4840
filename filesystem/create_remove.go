package filesystem

import "fmt"

// Create scans the inode table in ascending order (block 1 upward, slot 0
// upward within each block) for the first invalid inode, marks it valid and
// empty, and returns its inode number. It returns -1 if the table is full.
func (fs *FileSystem) Create() (int, error) {
	if !fs.Mounted() {
		return -1, ErrNotMounted
	}
	buf := make([]byte, BlockSize)
	for block := uint32(1); block <= fs.meta.InodeBlocks; block++ {
		if _, err := fs.disk.ReadBlock(block, buf); err != nil {
			return -1, fmt.Errorf("filesystem: reading inode block %d: %w", block, err)
		}
		ib := inodeBlockFromBytes(buf)
		for slot := uint32(0); slot < InodesPerBlock; slot++ {
			if ib[slot].Valid != 0 {
				continue
			}
			ib[slot] = inode{Valid: 1}
			if _, err := fs.disk.WriteBlock(block, ib.toBytes()); err != nil {
				return -1, fmt.Errorf("filesystem: writing inode block %d: %w", block, err)
			}
			free, err := fs.buildFreeBitmap()
			if err != nil {
				return -1, err
			}
			fs.free = free
			n := inodeNumber(block, slot)
			log.WithField("inode", n).Debug("created inode")
			return int(n), nil
		}
	}
	return -1, ErrNoFreeInodes
}

// Remove invalidates inode n, freeing every data and indirect block it
// referenced. The inode's size and pointer fields are left as written;
// only its validity flag changes, so removal is cheap and so that a stray
// read of a removed inode's old fields cannot be mistaken for live data
// (Stat and Read both refuse an invalid inode before looking at them).
func (fs *FileSystem) Remove(n int) (bool, error) {
	if !fs.Mounted() {
		return false, ErrNotMounted
	}
	if n < 0 || uint32(n) >= fs.meta.Inodes {
		return false, ErrInvalidInode
	}
	block, slot := inodeLocation(uint32(n))
	buf := make([]byte, BlockSize)
	if _, err := fs.disk.ReadBlock(block, buf); err != nil {
		return false, fmt.Errorf("filesystem: reading inode block %d: %w", block, err)
	}
	ib := inodeBlockFromBytes(buf)
	ino := ib[slot]
	if ino.Valid == 0 {
		return false, ErrInvalidInode
	}

	for _, d := range ino.Direct {
		if d != 0 {
			fs.unassignBlock(d)
		}
	}
	if ino.Indirect != 0 {
		fs.unassignBlock(ino.Indirect)
		ptrBuf := make([]byte, BlockSize)
		if _, err := fs.disk.ReadBlock(ino.Indirect, ptrBuf); err != nil {
			return false, fmt.Errorf("filesystem: reading indirect block %d: %w", ino.Indirect, err)
		}
		for _, p := range pointerBlockFromBytes(ptrBuf) {
			if p == 0 {
				break
			}
			fs.unassignBlock(p)
		}
	}

	ino.Valid = 0
	ib[slot] = ino
	if _, err := fs.disk.WriteBlock(block, ib.toBytes()); err != nil {
		return false, fmt.Errorf("filesystem: writing inode block %d: %w", block, err)
	}
	log.WithField("inode", n).Debug("removed inode")
	return true, nil
}

// Stat returns the logical size of inode n, or -1 if it is not valid.
func (fs *FileSystem) Stat(n int) (int, error) {
	if !fs.Mounted() {
		return -1, ErrNotMounted
	}
	if n < 0 || uint32(n) >= fs.meta.Inodes {
		return -1, ErrInvalidInode
	}
	block, slot := inodeLocation(uint32(n))
	buf := make([]byte, BlockSize)
	if _, err := fs.disk.ReadBlock(block, buf); err != nil {
		return -1, fmt.Errorf("filesystem: reading inode block %d: %w", block, err)
	}
	ib := inodeBlockFromBytes(buf)
	if ib[slot].Valid == 0 {
		return -1, ErrInvalidInode
	}
	return int(ib[slot].Size), nil
}
