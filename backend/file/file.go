// Package file provides a backend.Storage implementation backed by a plain *os.File.
package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/PengtuLi/SimpleFS/backend"
)

type rawBackend struct {
	storage  fs.File
	readOnly bool
}

// New wraps an already-open fs.File as a backend.Storage.
func New(f fs.File, readOnly bool) backend.Storage {
	return rawBackend{
		storage:  f,
		readOnly: readOnly,
	}
}

// OpenOrCreate opens pathName read-write, creating it if it does not already exist.
// This is the backend used for a disk image: the emulator decides afterward whether
// the file's length matches what was requested and resizes it if not.
func OpenOrCreate(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass a path")
	}
	f, err := os.OpenFile(pathName, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open or create %s: %w", pathName, err)
	}
	return rawBackend{storage: f}, nil
}

// OpenReadOnly opens an existing path for reading only; any Writable() call on the
// result fails with backend.ErrIncorrectOpenMode. Used for read-only inspection of
// a volume that should not be mutated, such as a debug dump.
func OpenReadOnly(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass a path")
	}
	f, err := os.OpenFile(pathName, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open %s read-only: %w", pathName, err)
	}
	return rawBackend{storage: f, readOnly: true}, nil
}

// backend.Storage interface guard
var _ backend.Storage = (*rawBackend)(nil)

// Sys returns the OS-level file, used to truncate the backing store to the requested size.
func (f rawBackend) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

// Writable returns a handle for read-write operations, if the backend permits them.
func (f rawBackend) Writable() (backend.WritableFile, error) {
	if rwFile, ok := f.storage.(backend.WritableFile); ok {
		if !f.readOnly {
			return rwFile, nil
		}
		return nil, backend.ErrIncorrectOpenMode
	}
	return nil, backend.ErrNotSuitable
}

func (f rawBackend) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f rawBackend) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f rawBackend) Close() error {
	return f.storage.Close()
}

func (f rawBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if readerAt, ok := f.storage.(io.ReaderAt); ok {
		return readerAt.ReadAt(p, off)
	}
	return -1, backend.ErrNotSuitable
}

func (f rawBackend) Seek(offset int64, whence int) (int64, error) {
	if seeker, ok := f.storage.(io.Seeker); ok {
		return seeker.Seek(offset, whence)
	}
	return -1, backend.ErrNotSuitable
}
