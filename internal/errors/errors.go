package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Job phases. A JobError carries one of these as its Kind.
var (
	ErrInvalidTarget   = errors.New("invalid target directory")
	ErrInvalidCount    = errors.New("invalid commit count")
	ErrBootstrapFailed = errors.New("repository bootstrap failed")
	ErrCommitFailed    = errors.New("commit failed")
	ErrPushFailed      = errors.New("push failed")

	// ErrStopped ends a job that was asked to stop. It is not a failure.
	ErrStopped = errors.New("stopped by user")
)

// Failures outside the job phases.
var (
	// ErrGitOperationFailed is wrapped by every GitError built from a failed command.
	ErrGitOperationFailed = errors.New("git operation failed")

	ErrLockAcquisitionFailure = errors.New("failed to acquire lock")
	ErrAlreadyRunning         = errors.New("another commitgen job is already running for this repository")

	// ErrInvalidConfiguration marks usage errors; the CLI exits 2 for them.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// New is errors.New, so callers need only this package.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping err in the chain.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GitError is a git command that exited with an error. Output is the
// command's stderr; callers redact Args and Output before showing them.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

func (e *GitError) Error() string {
	var b strings.Builder
	b.WriteString("git ")
	b.WriteString(e.Operation)
	b.WriteString(" failed")
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString(": ")
		b.WriteString(out)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError records a failed "git <operation> <args...>".
func NewGitError(operation string, args []string, err error, output string) *GitError {
	return &GitError{Operation: operation, Args: args, Err: err, Output: output}
}

// JobError tags a failure with the phase of the commit job it happened in.
// Kind is one of the phase sentinels (ErrBootstrapFailed, ErrCommitFailed, ...),
// so both errors.Is(err, ErrCommitFailed) and errors.As(err, &gitErr) work.
type JobError struct {
	Kind error
	Err  error
}

func (e *JobError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the phase sentinel and the cause.
func (e *JobError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewJobError creates a JobError of the given kind.
func NewJobError(kind, err error) *JobError {
	return &JobError{Kind: kind, Err: err}
}

// LockError is a failure to take or release the repository lock. PID is
// the live holder when known, and zero otherwise.
type LockError struct {
	LockFile string
	PID      int
	Err      error
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("lock %s (held by PID %d): %v", e.LockFile, e.PID, e.Err)
	}
	return fmt.Sprintf("lock %s: %v", e.LockFile, e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

func NewLockError(lockFile string, pid int, err error) *LockError {
	return &LockError{LockFile: lockFile, PID: pid, Err: err}
}

// ConfigError names the setting that was rejected. Value is nil when it
// should not be echoed back.
type ConfigError struct {
	Parameter string
	Value     any
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s=%v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Parameter, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(parameter string, value any, err error) *ConfigError {
	return &ConfigError{Parameter: parameter, Value: value, Err: err}
}
