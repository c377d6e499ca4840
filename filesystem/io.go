package filesystem

import "fmt"

// Read copies up to length bytes starting at offset out of inode n's data
// into out, returning the number of bytes actually copied. A read never
// crosses a block boundary in a single call: it resolves the one data block
// covering offset, then copies min(length, size-offset, BlockSize) bytes
// from it. It fails with -1 if n is not valid or offset is at or past the
// inode's recorded size.
func (fs *FileSystem) Read(n int, out []byte, length int, offset int) (int, error) {
	if !fs.Mounted() {
		return -1, ErrNotMounted
	}
	if n < 0 || uint32(n) >= fs.meta.Inodes {
		return -1, ErrInvalidInode
	}
	if offset < 0 || length < 0 {
		return -1, fmt.Errorf("filesystem: negative offset or length")
	}

	block, slot := inodeLocation(uint32(n))
	ibuf := make([]byte, BlockSize)
	if _, err := fs.disk.ReadBlock(block, ibuf); err != nil {
		return -1, fmt.Errorf("filesystem: reading inode block %d: %w", block, err)
	}
	ino := inodeBlockFromBytes(ibuf)[slot]
	if ino.Valid == 0 {
		return -1, ErrInvalidInode
	}
	if uint32(offset) >= ino.Size {
		return -1, ErrOffsetPastEnd
	}

	ptIdx := uint32(offset) / BlockSize
	dataBlock, err := fs.resolvePointer(ino, ptIdx)
	if err != nil {
		return -1, err
	}
	if dataBlock == 0 {
		return -1, ErrInvalidInode
	}

	dbuf := make([]byte, BlockSize)
	if _, err := fs.disk.ReadBlock(dataBlock, dbuf); err != nil {
		return -1, fmt.Errorf("filesystem: reading data block %d: %w", dataBlock, err)
	}

	avail := int(ino.Size) - offset
	toCopy := length
	if avail < toCopy {
		toCopy = avail
	}
	if BlockSize < toCopy {
		toCopy = BlockSize
	}
	copy(out[:toCopy], dbuf[:toCopy])
	return toCopy, nil
}

// Write allocates exactly one fresh data block, fills it with length bytes
// from in (zero-padded if length < BlockSize, so no stale data from a
// previously-freed block can leak through), and links it into inode n: into
// the direct pointer addressed by offset, or, for an offset past the direct
// pointers, into the first zero slot of the indirect block, regardless of
// which indirect slot the offset names. It grows n's recorded size by length
// unconditionally, even when the write lands on an already-populated
// pointer slot further out: SimpleFS conflates "bytes written" with
// "bytes appended" by design, matching its original semantics.
func (fs *FileSystem) Write(n int, in []byte, length int, offset int) (int, error) {
	if !fs.Mounted() {
		return -1, ErrNotMounted
	}
	if n < 0 || uint32(n) >= fs.meta.Inodes {
		return -1, ErrInvalidInode
	}
	if offset < 0 || length < 0 {
		return -1, fmt.Errorf("filesystem: negative offset or length")
	}

	block, slot := inodeLocation(uint32(n))
	ibuf := make([]byte, BlockSize)
	if _, err := fs.disk.ReadBlock(block, ibuf); err != nil {
		return -1, fmt.Errorf("filesystem: reading inode block %d: %w", block, err)
	}
	ib := inodeBlockFromBytes(ibuf)
	ino := ib[slot]
	if ino.Valid == 0 {
		return -1, ErrInvalidInode
	}

	ptIdx := uint32(offset) / BlockSize
	if ptIdx >= MaxFileBlocks {
		return -1, ErrFileTooLarge
	}

	newBlock, err := fs.assignBlock()
	if err != nil {
		return -1, err
	}

	payload := make([]byte, BlockSize)
	n2 := length
	if n2 > BlockSize {
		n2 = BlockSize
	}
	copy(payload[:n2], in[:n2])
	if _, err := fs.disk.WriteBlock(newBlock, payload); err != nil {
		fs.unassignBlock(newBlock)
		return -1, fmt.Errorf("filesystem: writing data block %d: %w", newBlock, err)
	}

	if ptIdx < PointersPerInode {
		ino.Direct[ptIdx] = newBlock
	} else {
		if ino.Indirect == 0 {
			indirectBlock, err := fs.assignBlock()
			if err != nil {
				fs.unassignBlock(newBlock)
				return -1, err
			}
			ino.Indirect = indirectBlock
		}
		pbuf := make([]byte, BlockSize)
		if _, err := fs.disk.ReadBlock(ino.Indirect, pbuf); err != nil {
			fs.unassignBlock(newBlock)
			return -1, fmt.Errorf("filesystem: reading indirect block %d: %w", ino.Indirect, err)
		}
		ptrs := pointerBlockFromBytes(pbuf)
		free := -1
		for i, p := range ptrs {
			if p == 0 {
				free = i
				break
			}
		}
		if free == -1 {
			fs.unassignBlock(newBlock)
			return -1, ErrIndirectFull
		}
		ptrs[free] = newBlock
		if _, err := fs.disk.WriteBlock(ino.Indirect, ptrs.toBytes()); err != nil {
			fs.unassignBlock(newBlock)
			return -1, fmt.Errorf("filesystem: writing indirect block %d: %w", ino.Indirect, err)
		}
	}

	ino.Size += uint32(length)
	ib[slot] = ino
	if _, err := fs.disk.WriteBlock(block, ib.toBytes()); err != nil {
		return -1, fmt.Errorf("filesystem: writing inode block %d: %w", block, err)
	}
	log.WithFields(map[string]interface{}{
		"inode": n, "block": newBlock, "offset": offset, "length": length,
	}).Debug("wrote data block")
	return length, nil
}

// resolvePointer finds the data block covering pointer index ptIdx of ino,
// reading the indirect block if ptIdx falls beyond the direct pointers.
func (fs *FileSystem) resolvePointer(ino inode, ptIdx uint32) (uint32, error) {
	if ptIdx < PointersPerInode {
		return ino.Direct[ptIdx], nil
	}
	if ino.Indirect == 0 {
		return 0, nil
	}
	pbuf := make([]byte, BlockSize)
	if _, err := fs.disk.ReadBlock(ino.Indirect, pbuf); err != nil {
		return 0, fmt.Errorf("filesystem: reading indirect block %d: %w", ino.Indirect, err)
	}
	ptrs := pointerBlockFromBytes(pbuf)
	return ptrs[ptIdx-PointersPerInode], nil
}
