// Package testhelper provides stand-ins for backend.Storage used to exercise
// the disk emulator's backend error paths (short transfers, a read-only
// backend) without touching a real file descriptor.
package testhelper

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/PengtuLi/SimpleFS/backend"
)

type reader func(b []byte, offset int64) (int, error)
type writer func(b []byte, offset int64) (int, error)

// FileImpl implements backend.Storage, routing ReadAt and WriteAt through
// caller-supplied closures so a test can inject short reads, errors, or
// record call offsets without a backing file.
type FileImpl struct {
	Reader   reader
	Writer   writer
	ReadOnly bool
	Size     int64
}

var _ backend.Storage = (*FileImpl)(nil)

func (f *FileImpl) Stat() (fs.FileInfo, error) {
	return fakeInfo{size: f.Size}, nil
}

func (f *FileImpl) Read(b []byte) (int, error) {
	return f.Reader(b, 0)
}

func (f *FileImpl) Close() error {
	return nil
}

// ReadAt reads at a particular offset.
func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	return f.Reader(b, offset)
}

// WriteAt writes at a particular offset.
func (f *FileImpl) WriteAt(b []byte, offset int64) (int, error) {
	if f.ReadOnly {
		return 0, backend.ErrIncorrectOpenMode
	}
	return f.Writer(b, offset)
}

// Seek does not actually work; FileImpl is only ever driven through ReadAt/WriteAt.
func (f *FileImpl) Seek(offset int64, whence int) (int64, error) {
	return 0, fmt.Errorf("FileImpl does not implement Seek()")
}

// Sys always fails: FileImpl is not backed by a real *os.File, so code
// exercising it (e.g. disk.Lock) must take its best-effort fallback path.
func (f *FileImpl) Sys() (*os.File, error) {
	return nil, backend.ErrNotSuitable
}

// Writable returns f itself, unless it was constructed read-only.
func (f *FileImpl) Writable() (backend.WritableFile, error) {
	if f.ReadOnly {
		return nil, backend.ErrIncorrectOpenMode
	}
	return f, nil
}

type fakeInfo struct {
	size int64
}

func (fakeInfo) Name() string       { return "fake" }
func (fi fakeInfo) Size() int64     { return fi.size }
func (fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (fakeInfo) ModTime() time.Time { return time.Time{} }
func (fakeInfo) IsDir() bool        { return false }
func (fakeInfo) Sys() interface{}   { return nil }
