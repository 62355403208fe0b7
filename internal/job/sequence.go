package job

import (
	"context"

	"github.com/bashhack/commitgen/internal/errors"
)

// sequence creates commits 1..Count in order. A stop request is honored only
// between iterations, so a started iteration always finishes. It reports
// whether the loop was stopped early.
//
// Commits already made are kept when an iteration fails.
func (w *worker) sequence(ctx context.Context) (bool, error) {
	total := w.spec.Count
	tracking := newTrackingFile(w.repo.Path())

	w.status("Creating commits...")

	for i := 1; i <= total; i++ {
		if ctx.Err() != nil {
			return true, nil
		}

		timestamp := w.opts.Now().Format(TimestampLayout)

		if err := tracking.appendLine(commitLine(i, timestamp)); err != nil {
			return false, w.commitError(i, err)
		}

		if err := w.repo.AddAll(ctx); err != nil {
			return false, w.commitError(i, err)
		}

		if err := w.repo.Commit(ctx, commitMessage(i, timestamp)); err != nil {
			return false, w.commitError(i, err)
		}
		w.commits = i

		w.emit(Event{
			Kind:     EventProgress,
			Progress: float64(i) / float64(total),
			Commit:   i,
			Total:    total,
		})
		w.status("Created commit %d/%d", i, total)
	}

	// a stop that arrived during the last iteration still wins over the push
	return ctx.Err() != nil, nil
}

func (w *worker) commitError(i int, err error) error {
	return errors.NewJobError(errors.ErrCommitFailed, errors.Wrapf(err, "commit %d of %d", i, w.spec.Count))
}
