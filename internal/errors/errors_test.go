package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	originalErr := New("original error")
	wrappedErr := Wrap(originalErr, "wrapped message")

	assert.True(t, Is(wrappedErr, originalErr))
	assert.Equal(t, "wrapped message: original error", wrappedErr.Error())
}

func TestWrapf(t *testing.T) {
	originalErr := New("original error")
	wrappedErr := Wrapf(originalErr, "wrapped message with %s", "format")

	assert.True(t, Is(wrappedErr, originalErr))
	assert.Equal(t, "wrapped message with format: original error", wrappedErr.Error())
}

func TestGitError(t *testing.T) {
	err := errors.New("exit status 128")
	gitErr := NewGitError("push", []string{"-u", "origin", "main"}, err, "fatal: Authentication failed\n")

	assert.Equal(t, "git push failed: fatal: Authentication failed: exit status 128", gitErr.Error())
	assert.ErrorIs(t, gitErr, err)

	gitErr = NewGitError("init", nil, err, "")
	assert.Equal(t, "git init failed: exit status 128", gitErr.Error())
}

func TestJobError(t *testing.T) {
	cause := NewGitError("commit", []string{"-m", "Commit 1"}, ErrGitOperationFailed, "nothing to commit")
	err := error(NewJobError(ErrCommitFailed, cause))

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.ErrorIs(t, err, ErrGitOperationFailed)
	assert.NotErrorIs(t, err, ErrBootstrapFailed)

	var gitErr *GitError
	require.True(t, As(err, &gitErr))
	assert.Equal(t, "commit", gitErr.Operation)
	assert.Equal(t, "commit failed: git commit failed: nothing to commit: git operation failed", err.Error())

	wrapped := fmt.Errorf("job 42: %w", err)
	assert.ErrorIs(t, wrapped, ErrCommitFailed)

	bare := NewJobError(ErrStopped, nil)
	assert.Equal(t, "stopped by user", bare.Error())
	assert.ErrorIs(t, bare, ErrStopped)
}

func TestLockError(t *testing.T) {
	err := errors.New("file not found")
	lockErr := NewLockError("/tmp/lock.file", 1234, err)
	assert.Equal(t, "lock /tmp/lock.file (held by PID 1234): file not found", lockErr.Error())

	lockErr = NewLockError("/tmp/lock.file", 0, err)
	assert.Equal(t, "lock /tmp/lock.file: file not found", lockErr.Error())
	assert.ErrorIs(t, lockErr, err)
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("count", 0, Wrap(ErrInvalidCount, "must be positive"))
	assert.Equal(t, "count=0: must be positive: invalid commit count", configErr.Error())
	assert.ErrorIs(t, configErr, ErrInvalidCount)

	configErr = NewConfigError("repo", nil, ErrInvalidTarget)
	assert.Equal(t, "repo: invalid target directory", configErr.Error())
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", New("boom"), ExitFailure},
		{"explicit", WithExitCode(7, New("boom")), 7},
		{"explicit zero normalized", WithExitCode(0, New("boom")), ExitFailure},
		{"stopped", NewJobError(ErrStopped, nil), ExitStopped},
		{"config", NewConfigError("count", -1, ErrInvalidConfiguration), ExitUsage},
		{"count", Wrap(ErrInvalidCount, "count -3"), ExitUsage},
		{"push", NewJobError(ErrPushFailed, New("rejected")), ExitPushFailed},
		{"commit", NewJobError(ErrCommitFailed, New("rejected")), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", WithExitCode(3, New("boom")).Error())
	assert.Equal(t, "exit status 2", WithExitCode(2, nil).Error())
}
