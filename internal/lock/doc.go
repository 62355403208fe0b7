// Package lock keeps two commitgen runs from working on the same repository
// at once.
//
// Concurrent jobs against one directory would interleave appends to the
// tracking file and race on the index, so the CLI takes a per-repository
// lock before starting a job:
//
//	l, err := lock.New(repoPath, log)
//	if err != nil {
//	    return err
//	}
//	if err := l.Acquire(); err != nil {
//	    return err // wraps errors.ErrAlreadyRunning when another run is active
//	}
//	defer l.Release()
//
// The lock file is $TMPDIR/commitgen-<hash>.lock, where <hash> is derived
// from the absolute repository path. It is held with flock(2) and contains
// the holder's PID. Because the kernel drops an flock when its process
// exits, a file left behind by a crashed run is simply taken over.
//
// A Locker is not safe for concurrent use.
package lock
