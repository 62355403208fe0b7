// Package commitgen creates a stream of commits in a git repository on demand.
//
// commitgen takes a directory and a commit count. If the directory is not yet
// a git repository it is initialized first, with a seed commit. Then exactly
// that many commits are created, each appending one timestamped line to
// commit_log.txt. When a remote URL is given, origin is configured and the
// current branch is pushed with upstream tracking, using a username and
// access token when both are supplied.
//
// # Quick Start
//
//	# Create 100 commits in the current directory
//	commitgen
//
//	# Create 25 commits in another directory and watch them in a terminal UI
//	commitgen ./sandbox -n 25 --tui
//
//	# Push the result, reading the token without echo
//	commitgen ./sandbox -n 10 --remote https://github.com/owner/repo.git \
//	    --username owner --ask-token
//
// A job can be stopped at any time with Ctrl+C, or in the terminal UI with "s"
// confirmed by "y". The commit in progress is finished first, and nothing is
// pushed after a stop.
//
// # Module Structure
//
// The module is organized into these packages:
//
//   - cmd/commitgen: Command-line interface
//   - internal/job: The commit job, its state machine and event stream
//   - internal/git: Git command execution
//   - internal/remote: Remote URL parsing, credential embedding and redaction
//   - internal/config: Configuration from profile files, environment and flags
//   - internal/lock: Per-repository file lock
//   - internal/tui: Terminal progress view
//   - internal/logger: Debug log and user-facing messages
//   - internal/errors: Error types and exit codes
//   - internal/constants: ASCII art and fixed values
//
// # Configuration
//
// Settings are read from, in increasing priority: a YAML profile
// (.commitgen.yaml in the target directory, or --config), COMMITGEN_*
// environment variables, and command-line flags. Access tokens are never
// read from the profile.
//
//	# .commitgen.yaml
//	count: 50
//	remote: https://github.com/owner/repo.git
//	username: owner
//
// # Exit Codes
//
//   - 0: all commits created (and pushed, when requested)
//   - 1: a job or system failure
//   - 2: invalid usage or configuration
//   - 3: commits were created but the push failed
//   - 130: stopped by the user
//
// # Implementation Notes
//
// commitgen uses the command-line Git executable rather than a Go Git library
// so commits honor the host's git configuration, including author identity.
// Commands are executed through an abstracted interface that can be replaced
// for testing. Tokens are embedded in the origin URL only for the duration of
// a push and are redacted from every message, log line and error.
package commitgen
