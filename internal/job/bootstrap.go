package job

import (
	"context"

	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/git"
)

// bootstrap makes sure the target is a repository. When .git is missing it
// runs init, writes the seed line, stages everything and makes the initial
// commit. An existing repository is left untouched.
//
// A failure part way through leaves whatever was already created on disk.
func (w *worker) bootstrap(ctx context.Context) error {
	if git.HasMetadata(w.repo.Path()) {
		w.log.Info("job %s: repository metadata present, skipping bootstrap", w.handle.id)
		return nil
	}

	w.status("Initializing Git repository...")

	if err := w.repo.Init(ctx); err != nil {
		return w.bootstrapError(err)
	}
	w.bootstrapped = true

	if err := newTrackingFile(w.repo.Path()).seed(); err != nil {
		return w.bootstrapError(err)
	}

	if err := w.repo.AddAll(ctx); err != nil {
		return w.bootstrapError(err)
	}

	if err := w.repo.Commit(ctx, SeedLine); err != nil {
		return w.bootstrapError(err)
	}

	return nil
}

func (w *worker) bootstrapError(err error) error {
	return errors.NewJobError(errors.ErrBootstrapFailed, err)
}
