package errors

import "fmt"

// Process exit codes used by the commitgen CLI.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitPushFailed = 3
	ExitStopped    = 130
)

// ExitCoder is implemented by errors that carry an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
type ExitError struct {
	code  int
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.cause.Error()
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// WithExitCode wraps cause so that ExitCodeOf reports code for it.
func WithExitCode(code int, cause error) error {
	return &ExitError{code: normalize(code), cause: cause}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if As(err, &ec) {
		return ec.ExitCode()
	}
	switch {
	case Is(err, ErrStopped):
		return ExitStopped
	case Is(err, ErrInvalidConfiguration), Is(err, ErrInvalidCount), Is(err, ErrInvalidTarget):
		return ExitUsage
	case Is(err, ErrPushFailed):
		return ExitPushFailed
	}
	return ExitFailure
}

func normalize(code int) int {
	// Exit code 0 means success; errors should never be 0.
	if code <= 0 {
		return ExitFailure
	}
	return code
}
