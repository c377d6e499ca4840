package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/PengtuLi/SimpleFS/disk"
	"github.com/PengtuLi/SimpleFS/util"
)

// Debug reads d, without writing to it, and prints a human-readable report of its
// superblock and every valid inode's size and block pointers to w. It never
// mounts d, so it can inspect a volume another process currently holds
// exclusively. A bad magic number is fatal: the on-disk image is not a
// SimpleFS volume and there is nothing further to report.
func Debug(d *disk.Disk, w io.Writer) error {
	buf := make([]byte, BlockSize)
	if _, err := d.ReadBlock(0, buf); err != nil {
		return fmt.Errorf("filesystem: reading superblock: %w", err)
	}
	meta := superblockFromBytes(buf)
	if meta.MagicNumber != MagicNumber {
		fmt.Fprintln(os.Stderr, "filesystem: not a SimpleFS volume (bad magic number)")
		os.Exit(1)
	}

	fmt.Fprintln(w, "SuperBlock:")
	fmt.Fprintf(w, "    magic number is valid\n")
	fmt.Fprintf(w, "    %d blocks\n", meta.Blocks)
	fmt.Fprintf(w, "    %d inode blocks\n", meta.InodeBlocks)
	fmt.Fprintf(w, "    %d inodes\n", meta.Inodes)
	fmt.Fprintf(w, "    volume id %s\n", meta.VolumeID)

	ibuf := make([]byte, BlockSize)
	ptrBuf := make([]byte, BlockSize)
	for blockIdx := uint32(1); blockIdx <= meta.InodeBlocks; blockIdx++ {
		if _, err := d.ReadBlock(blockIdx, ibuf); err != nil {
			return fmt.Errorf("filesystem: reading inode block %d: %w", blockIdx, err)
		}
		block := inodeBlockFromBytes(ibuf)
		for slot, ino := range block {
			if ino.Valid == 0 {
				continue
			}
			n := inodeNumber(blockIdx, uint32(slot))
			fmt.Fprintf(w, "Inode %d:\n", n)
			fmt.Fprintf(w, "    size: %d bytes\n", ino.Size)

			var direct []uint32
			for _, p := range ino.Direct {
				if p != 0 {
					direct = append(direct, p)
				}
			}
			if len(direct) > 0 {
				fmt.Fprintf(w, "    direct blocks: %v\n", direct)
			}

			if ino.Indirect != 0 {
				fmt.Fprintf(w, "    indirect block: %d\n", ino.Indirect)
				if _, err := d.ReadBlock(ino.Indirect, ptrBuf); err != nil {
					return fmt.Errorf("filesystem: reading indirect block %d: %w", ino.Indirect, err)
				}
				var indirect []uint32
				for _, p := range pointerBlockFromBytes(ptrBuf) {
					if p != 0 {
						indirect = append(indirect, p)
					}
				}
				if len(indirect) > 0 {
					fmt.Fprintf(w, "    indirect data blocks: %v\n", indirect)
				}
			}
		}
	}

	log.WithField("volume_id", meta.VolumeID).Debug("dumped volume")
	if log.IsLevelEnabled(logrus.DebugLevel) {
		fmt.Fprint(w, util.DumpBlock(buf[:superblockFieldBytes+16], 16))
	}
	return nil
}
