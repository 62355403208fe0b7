/*
Package job runs a single commit job against a local repository.

A job bootstraps the repository when it has no .git directory, creates a
fixed number of commits by appending to commit_log.txt, and optionally
configures origin and pushes the current branch.

# Lifecycle

Start launches the job on a worker goroutine and returns a Handle. The worker
owns all job state and is the only goroutine that runs git. The driver reads
Events, may call Stop, and receives exactly one Result from Wait:

	h := job.Start(ctx, job.Spec{RepoPath: dir, Count: 10}, job.Options{})
	for ev := range h.Events() {
		fmt.Println(ev.Message)
	}
	res := h.Wait()

Stop is cooperative. It is checked before each commit iteration and once
more after the last one, so a git command that has started always finishes
and no push follows a stop.

# Credentials

Credentials are embedded into http(s) remote URLs only for the duration of
the push, and the previous origin URL is restored afterwards. Every status
line, error and log entry passes through a remote.Redactor first.
*/
package job
