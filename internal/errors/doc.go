// Package errors provides error handling utilities for the commitgen application.
//
// It defines the sentinel errors that name each way a commit job can end badly,
// the typed errors that carry context (GitError, JobError, LockError, ConfigError),
// and the exit-code mapping used by the CLI.
//
// # Job error kinds
//
// Every failure of a commit job is a *JobError whose Kind is one of:
//
//   - ErrInvalidTarget: the target path is missing or not a directory
//   - ErrInvalidCount: the commit count is zero or negative
//   - ErrBootstrapFailed: git init or the seed commit failed
//   - ErrCommitFailed: staging or committing failed inside the loop
//   - ErrPushFailed: remote configuration or push failed after the commits were made
//
// A user stop is reported with ErrStopped, which is not treated as a failure.
//
// # Usage
//
//	if errors.Is(err, errors.ErrCommitFailed) {
//	    var gitErr *errors.GitError
//	    if errors.As(err, &gitErr) {
//	        fmt.Println(gitErr.Output)
//	    }
//	}
//
// The command output held by a GitError has already passed through the job's
// credential redactor, so it is safe to print.
package errors
