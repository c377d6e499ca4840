//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package disk

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Lock takes a non-blocking exclusive advisory lock on the backing file's
// descriptor. The lock belongs to this Disk's open descriptor: while it is
// held, Lock through any other open of the same backing file (in this or
// another process) fails, but a second Lock through the same Disk succeeds.
// Separately, the engine refuses Mount on a FileSystem that is already
// mounted.
func (d *Disk) Lock() error {
	if d == nil || !d.open {
		return ErrClosed
	}
	osFile, err := d.backend.Sys()
	if err != nil {
		// not every backend is backed by a real *os.File (e.g. in-memory test
		// doubles); locking is best-effort and such backends are exclusive
		// by construction anyway.
		return nil
	}
	if err := unix.Flock(int(osFile.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return fmt.Errorf("disk: already locked by another mount: %w", err)
	}
	return nil
}

// Unlock releases a lock taken by Lock.
func (d *Disk) Unlock() error {
	if d == nil || !d.open {
		return nil
	}
	osFile, err := d.backend.Sys()
	if err != nil {
		return nil
	}
	return unix.Flock(int(osFile.Fd()), unix.LOCK_UN)
}
