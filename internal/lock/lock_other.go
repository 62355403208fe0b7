//go:build !unix

package lock

import (
	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/logger"
)

// Locker is unavailable on this platform; New always fails.
type Locker struct{}

// New reports that repository locking needs flock(2).
func New(string, logger.Logger) (*Locker, error) {
	return nil, errors.NewLockError("", 0,
		errors.Wrap(errors.ErrLockAcquisitionFailure,
			"commitgen currently only supports Unix-like operating systems (Linux, macOS, BSD)"))
}

func (l *Locker) Path() string   { return "" }
func (l *Locker) Acquire() error { return errors.ErrLockAcquisitionFailure }
func (l *Locker) Release() error { return nil }
