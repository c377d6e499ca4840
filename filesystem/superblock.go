package filesystem

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// superblock mirrors the first BLOCK_SIZE bytes of block 0. Its four fields
// are native-endian on disk, as the volume is not required to be portable
// across architectures. A VolumeID (UUID) trails them in the otherwise
// unused remainder of block 0, purely as a human-readable tag surfaced by
// Debug; none of the mount invariants depend on it.
type superblock struct {
	MagicNumber uint32
	Blocks      uint32
	InodeBlocks uint32
	Inodes      uint32
	VolumeID    uuid.UUID
}

// superblockFieldBytes is the size of the four required native-endian fields.
const superblockFieldBytes = 16

// newSuperblock computes the canonical superblock for a disk of the given
// block count, per the fixed inode-table sizing rule.
func newSuperblock(blocks uint32) superblock {
	inodeBlocks := ceilDiv(blocks, 10)
	return superblock{
		MagicNumber: MagicNumber,
		Blocks:      blocks,
		InodeBlocks: inodeBlocks,
		Inodes:      inodeBlocks * InodesPerBlock,
		VolumeID:    uuid.New(),
	}
}

// toBytes packs the superblock into a BlockSize-length buffer suitable for
// disk.WriteBlock. Fields are packed in order, 4 bytes each, native-endian.
func (sb superblock) toBytes() []byte {
	buf := make([]byte, BlockSize)
	byteOrder.PutUint32(buf[0:4], sb.MagicNumber)
	byteOrder.PutUint32(buf[4:8], sb.Blocks)
	byteOrder.PutUint32(buf[8:12], sb.InodeBlocks)
	byteOrder.PutUint32(buf[12:16], sb.Inodes)
	idBytes, err := sb.VolumeID.MarshalBinary()
	if err == nil {
		copy(buf[16:32], idBytes)
	}
	return buf
}

// superblockFromBytes unpacks a block-0-sized buffer into a superblock.
func superblockFromBytes(buf []byte) superblock {
	var sb superblock
	sb.MagicNumber = byteOrder.Uint32(buf[0:4])
	sb.Blocks = byteOrder.Uint32(buf[4:8])
	sb.InodeBlocks = byteOrder.Uint32(buf[8:12])
	sb.Inodes = byteOrder.Uint32(buf[12:16])
	if id, err := uuid.FromBytes(buf[16:32]); err == nil {
		sb.VolumeID = id
	}
	return sb
}

// byteOrder is the native-endian layout used for every on-disk integer
// field. The host running SimpleFS is assumed to also be the one reading
// its images back, matching the original emulator's posture.
var byteOrder = binary.NativeEndian
