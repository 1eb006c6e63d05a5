package installation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/distup/internal/messages"
)

// ErrLocked reports that another process holds the installation's update lock.
var ErrLocked = errors.New("installation is locked")

// DefaultLockTimeout bounds how long Open waits for a concurrent run to finish.
const DefaultLockTimeout = 5 * time.Second

var (
	flockFn       = unix.Flock
	lockSleep     = time.Sleep
	lockPollEvery = 100 * time.Millisecond
)

// updateLock is an exclusive advisory flock on .distup/update.lock.
type updateLock struct {
	path string
	file *os.File
}

// acquireUpdateLock opens or creates path and polls for an exclusive lock until wait elapses.
func acquireUpdateLock(path string, wait time.Duration) (*updateLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	deadline := time.Now().Add(wait)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &updateLock{path: path, file: file}, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockFmt, path, err)
		}
		if !time.Now().Before(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: "+messages.LockTimeoutFmt, ErrLocked, wait)
		}
		lockSleep(lockPollEvery)
	}
}

// release unlocks and closes the lock file. The file itself stays in place.
func (l *updateLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil
	if err := flockFn(int(file.Fd()), unix.LOCK_UN); err != nil {
		_ = file.Close()
		return fmt.Errorf(messages.LockFmt, l.path, err)
	}
	return file.Close()
}
