//go:build unix

package store

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockDir takes an exclusive advisory lock on dir. Every File rooted at the
// same directory, in this process or another, waits on the same lock. The
// returned function releases it.
func lockDir(dir string) (func(), error) {
	fh, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for locking: %w", dir, err)
	}
	for {
		err = unix.Flock(int(fh.Fd()), unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	return func() {
		_ = unix.Flock(int(fh.Fd()), unix.LOCK_UN)
		_ = fh.Close()
	}, nil
}
