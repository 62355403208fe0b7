//go:build unix

package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/logger"
)

// maxAttempts bounds the retries when the lock file is replaced between
// open and flock by a releasing process.
const maxAttempts = 3

// Locker serializes commit jobs per repository with an flock'd file that
// records the holder's PID.
type Locker struct {
	path string
	file *os.File
	pid  int
	log  logger.Logger
}

// New creates a Locker for the repository at repoPath. The lock file lives
// in the system temp directory and is keyed by a hash of the absolute path,
// so different spellings of one directory share a lock.
func New(repoPath string, log logger.Logger) (*Locker, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, errors.NewLockError("", 0, errors.Wrap(errors.ErrLockAcquisitionFailure, err.Error()))
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Locker{
		path: FilePath(abs),
		pid:  os.Getpid(),
		log:  log,
	}, nil
}

// FilePath returns the lock file used for the absolute repository path.
func FilePath(absRepoPath string) string {
	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(absRepoPath)))[:16]
	return filepath.Join(os.TempDir(), fmt.Sprintf("commitgen-%s.lock", hash))
}

// Path returns the lock file path.
func (l *Locker) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. When another live process holds
// it the error wraps ErrAlreadyRunning and carries that process's PID.
// A lock file left behind by a process that died is taken over.
func (l *Locker) Acquire() error {
	if l.file != nil {
		return nil
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return errors.NewLockError(l.path, 0, errors.Wrap(errors.ErrLockAcquisitionFailure, err.Error()))
		}

		if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			_ = f.Close()
			if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
				return l.busy()
			}
			return errors.NewLockError(l.path, 0, errors.Wrap(errors.ErrLockAcquisitionFailure, err.Error()))
		}

		// the previous holder may have removed the file after we opened it
		if !l.sameFile(f) {
			_ = f.Close()
			continue
		}

		if previous, err := readPID(f); err == nil && previous != l.pid {
			l.log.Info("taking over lock %s left by PID %d", l.path, previous)
		}

		if err := writePID(f, l.pid); err != nil {
			_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
			_ = f.Close()
			return errors.NewLockError(l.path, l.pid, errors.Wrap(errors.ErrLockAcquisitionFailure, err.Error()))
		}

		l.file = f
		l.log.Info("acquired lock %s", l.path)
		return nil
	}

	return errors.NewLockError(l.path, 0, errors.Wrap(errors.ErrLockAcquisitionFailure, "lock file kept changing while acquiring it"))
}

// busy builds the error for a lock held by someone else.
func (l *Locker) busy() error {
	pid, err := ReadHolder(l.path)
	if err != nil || !processAlive(pid) {
		pid = 0
	}
	return errors.NewLockError(l.path, pid, errors.ErrAlreadyRunning)
}

func (l *Locker) sameFile(f *os.File) bool {
	held, err := f.Stat()
	if err != nil {
		return false
	}
	onDisk, err := os.Stat(l.path)
	if err != nil {
		return false
	}
	return os.SameFile(held, onDisk)
}

// Release unlocks and removes the lock file. It is safe to call more than once.
func (l *Locker) Release() error {
	if l.file == nil {
		return nil
	}

	var err error
	// remove before unlocking so a waiter cannot lock a file that is about to vanish
	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		err = errors.NewLockError(l.path, l.pid, errors.Wrap(removeErr, "failed to remove lock file"))
	}
	if unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); unlockErr != nil && err == nil {
		err = errors.NewLockError(l.path, l.pid, errors.Wrap(unlockErr, "failed to release lock"))
	}
	if closeErr := l.file.Close(); closeErr != nil && err == nil {
		err = errors.NewLockError(l.path, l.pid, errors.Wrap(closeErr, "failed to close lock file"))
	}

	l.file = nil
	l.log.Info("released lock %s", l.path)
	return err
}

// ReadHolder returns the PID recorded in a lock file.
func ReadHolder(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read lock file")
	}
	return parsePID(data)
}

func readPID(f *os.File) (int, error) {
	buf := make([]byte, 32)
	n, err := f.ReadAt(buf, 0)
	if n == 0 && err != nil {
		return 0, err
	}
	return parsePID(buf[:n])
}

func parsePID(data []byte) (int, error) {
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID in lock file: %q", strings.TrimSpace(string(data)))
	}
	return pid, nil
}

func writePID(f *os.File, pid int) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	_, err := f.WriteAt([]byte(strconv.Itoa(pid)+"\n"), 0)
	return err
}

// processAlive checks for a process with signal 0. EPERM still means the
// process exists.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
