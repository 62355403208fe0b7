package job

import (
	"context"
	"fmt"

	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/remote"
)

// push configures origin and pushes the current branch with upstream
// tracking. A push problem never undoes the commits already made, so every
// error here is reported through the PushFailed outcome.
func (w *worker) push(ctx context.Context) (PushOutcome, error) {
	w.status("Configuring remote repository...")

	remotes, err := w.repo.Remotes(ctx)
	if err != nil {
		return w.pushFailed(err)
	}

	originURL, hasOrigin := remotes[remote.Name]
	if !hasOrigin {
		if err := w.repo.AddRemote(ctx, remote.Name, w.spec.RemoteURL); err != nil {
			return w.pushFailed(err)
		}
		originURL = w.spec.RemoteURL
	}

	creds := w.spec.Credentials
	if !creds.Complete() {
		reason := "no username or token given"
		if creds.Partial() {
			reason = "both a username and a token are required"
		}
		w.status("Skipping push: %s", reason)
		return PushSkipped, nil
	}

	branch, err := w.repo.CurrentBranch(ctx)
	if err != nil {
		return w.pushFailed(err)
	}
	if branch == "" {
		return w.pushFailed(fmt.Errorf("no current branch to push (detached HEAD?)"))
	}

	authURL, err := remote.AuthenticatedURL(originURL, creds)
	if err != nil {
		return w.pushFailed(err)
	}

	if authURL != originURL {
		if err := w.repo.SetRemoteURL(ctx, remote.Name, authURL); err != nil {
			return w.pushFailed(err)
		}
		defer w.restoreOrigin(ctx, originURL)
	}

	w.status("Pushing to remote...")
	if err := w.repo.Push(ctx, remote.Name, branch); err != nil {
		return w.pushFailed(err)
	}

	w.status("Successfully pushed to remote!")
	return PushPushed, nil
}

// restoreOrigin puts back the credential-free URL so the token does not
// outlive the job in .git/config.
func (w *worker) restoreOrigin(ctx context.Context, url string) {
	if err := w.repo.SetRemoteURL(ctx, remote.Name, url); err != nil {
		msg := "Error: failed to restore remote URL: " + w.redactor.Redact(err.Error())
		w.log.Warning("job %s: %s", w.handle.id, msg)
		w.emit(Event{Kind: EventError, Message: msg})
	}
}

func (w *worker) pushFailed(err error) (PushOutcome, error) {
	jobErr := errors.NewJobError(errors.ErrPushFailed, err)
	msg := "Error: " + w.redactor.Redact(jobErr.Error())
	w.log.Warning("job %s: %s", w.handle.id, msg)
	w.emit(Event{Kind: EventError, Message: msg})
	return PushFailed, jobErr
}
