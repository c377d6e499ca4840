package filesystem_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/PengtuLi/SimpleFS/disk"
	"github.com/PengtuLi/SimpleFS/filesystem"
)

func freshDisk(t *testing.T, blocks uint32) *disk.Disk {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vol.img")
	d, err := disk.Open(path, blocks)
	if err != nil {
		t.Fatalf("disk.Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func formatAndMount(t *testing.T, blocks uint32) (*filesystem.FileSystem, *disk.Disk) {
	t.Helper()
	d := freshDisk(t, blocks)
	fs := filesystem.New()
	if err := fs.Format(d); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if err := fs.Mount(d); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	t.Cleanup(fs.Unmount)
	return fs, d
}

func TestFormatThenMountSucceeds(t *testing.T) {
	formatAndMount(t, 32)
}

func TestMountRejectsBadMagic(t *testing.T) {
	d := freshDisk(t, 32)
	buf := make([]byte, filesystem.BlockSize)
	if _, err := d.WriteBlock(0, buf); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}
	fs := filesystem.New()
	if err := fs.Mount(d); err != filesystem.ErrBadMagic {
		t.Fatalf("Mount on an unformatted disk = %v, want %v", err, filesystem.ErrBadMagic)
	}
}

func TestMountRejectsWrongBlockCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vol.img")
	d1, err := disk.Open(path, 32)
	if err != nil {
		t.Fatalf("disk.Open: %v", err)
	}
	fs := filesystem.New()
	if err := fs.Format(d1); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	d2, err := disk.Open(path, 64)
	if err != nil {
		t.Fatalf("reopen with different block count: %v", err)
	}
	defer d2.Close()

	if err := fs.Mount(d2); err != filesystem.ErrLayoutMismatch {
		t.Fatalf("Mount after resize = %v, want %v", err, filesystem.ErrLayoutMismatch)
	}
}

func TestDoubleMountRefused(t *testing.T) {
	fs, d := formatAndMount(t, 32)
	if err := fs.Mount(d); err != filesystem.ErrAlreadyMounted {
		t.Fatalf("second Mount = %v, want %v", err, filesystem.ErrAlreadyMounted)
	}
}

func TestCreateStatRemoveRoundTrip(t *testing.T) {
	fs, _ := formatAndMount(t, 32)

	n, err := fs.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n < 0 {
		t.Fatalf("Create returned negative inode number %d", n)
	}

	size, err := fs.Stat(n)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if size != 0 {
		t.Fatalf("Stat on a fresh inode = %d, want 0", size)
	}

	ok, err := fs.Remove(n)
	if err != nil || !ok {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", ok, err)
	}

	if _, err := fs.Stat(n); err != filesystem.ErrInvalidInode {
		t.Fatalf("Stat after Remove = %v, want %v", err, filesystem.ErrInvalidInode)
	}
}

func TestRemoveUnallocatedInodeFails(t *testing.T) {
	fs, _ := formatAndMount(t, 32)
	ok, err := fs.Remove(0)
	if ok || err != filesystem.ErrInvalidInode {
		t.Fatalf("Remove on an untouched inode = (%v, %v), want (false, %v)", ok, err, filesystem.ErrInvalidInode)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	fs, _ := formatAndMount(t, 32)

	n, err := fs.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	payload := []byte("hello, simplefs")
	written, err := fs.Write(n, payload, len(payload), 0)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if written != len(payload) {
		t.Fatalf("Write returned %d, want %d", written, len(payload))
	}

	size, err := fs.Stat(n)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if size != len(payload) {
		t.Fatalf("Stat after Write = %d, want %d", size, len(payload))
	}

	out := make([]byte, len(payload))
	read, err := fs.Read(n, out, len(payload), 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if read != len(payload) {
		t.Fatalf("Read returned %d, want %d", read, len(payload))
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("read back %q, want %q", out, payload)
	}
}

func TestReadPastEndFails(t *testing.T) {
	fs, _ := formatAndMount(t, 32)
	n, err := fs.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	out := make([]byte, 10)
	if _, err := fs.Read(n, out, 10, 0); err != filesystem.ErrOffsetPastEnd {
		t.Fatalf("Read at offset 0 on an empty file = %v, want %v", err, filesystem.ErrOffsetPastEnd)
	}
}

func TestWriteFillsIndirectBlock(t *testing.T) {
	fs, _ := formatAndMount(t, 200)
	n, err := fs.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	payload := bytes.Repeat([]byte{0x42}, filesystem.BlockSize)
	for i := 0; i < filesystem.PointersPerInode+2; i++ {
		offset := i * filesystem.BlockSize
		if _, err := fs.Write(n, payload, filesystem.BlockSize, offset); err != nil {
			t.Fatalf("Write block %d: %v", i, err)
		}
	}

	out := make([]byte, filesystem.BlockSize)
	lastOffset := (filesystem.PointersPerInode + 1) * filesystem.BlockSize
	if _, err := fs.Read(n, out, filesystem.BlockSize, lastOffset); err != nil {
		t.Fatalf("Read from indirect block: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("data read back from indirect block did not match what was written")
	}
}

func TestWriteBeyondMaxFileSizeFails(t *testing.T) {
	fs, _ := formatAndMount(t, 2000)
	n, err := fs.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	payload := []byte{1}
	_, err = fs.Write(n, payload, 1, filesystem.MaxFileSize)
	if err != filesystem.ErrFileTooLarge {
		t.Fatalf("Write at offset MaxFileSize = %v, want %v", err, filesystem.ErrFileTooLarge)
	}
}

func TestUnmountThenMountPreservesInodeSize(t *testing.T) {
	fs, d := formatAndMount(t, 32)
	n, err := fs.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := fs.Write(n, []byte("data"), 4, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	fs.Unmount()

	if err := fs.Mount(d); err != nil {
		t.Fatalf("remount: %v", err)
	}
	size, err := fs.Stat(n)
	if err != nil {
		t.Fatalf("Stat after remount: %v", err)
	}
	if size != 4 {
		t.Fatalf("Stat after remount = %d, want 4", size)
	}
}

func TestOperationsFailWhenNotMounted(t *testing.T) {
	fs := filesystem.New()
	if _, err := fs.Create(); err != filesystem.ErrNotMounted {
		t.Fatalf("Create unmounted = %v, want %v", err, filesystem.ErrNotMounted)
	}
	if _, err := fs.Stat(0); err != filesystem.ErrNotMounted {
		t.Fatalf("Stat unmounted = %v, want %v", err, filesystem.ErrNotMounted)
	}
}
