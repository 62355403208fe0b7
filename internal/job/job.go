package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/git"
	"github.com/bashhack/commitgen/internal/logger"
	"github.com/bashhack/commitgen/internal/remote"
)

// Spec describes one commit job.
type Spec struct {
	// RepoPath is the target directory. It must already exist.
	RepoPath string

	// Count is the number of commits to create. It must be positive.
	Count int

	// RemoteURL is optional. When set, origin is configured and pushed to.
	RemoteURL string

	// Credentials authenticate the push. Both fields are needed to push.
	Credentials remote.Credentials
}

// Validate checks the count and the target directory.
func (s Spec) Validate() error {
	if s.Count <= 0 {
		return errors.NewJobError(errors.ErrInvalidCount,
			fmt.Errorf("commit count must be a positive integer (got %d)", s.Count))
	}
	return validateTarget(s.RepoPath)
}

func validateTarget(path string) error {
	if path == "" {
		return errors.NewJobError(errors.ErrInvalidTarget, fmt.Errorf("no target directory given"))
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewJobError(errors.ErrInvalidTarget, err)
	}
	if !info.IsDir() {
		return errors.NewJobError(errors.ErrInvalidTarget, fmt.Errorf("%s is not a directory", path))
	}
	return nil
}

// Options carry the collaborators of a job. The zero value is usable.
type Options struct {
	// Executor runs git commands; defaults to git.ExecExecutor.
	Executor git.CommandExecutor

	// Logger receives redacted debug lines; defaults to logger.Discard().
	Logger logger.Logger

	// Now stamps commits; defaults to time.Now.
	Now func() time.Time
}

// Handle is the caller's view of a running job. The caller only observes it
// and may request a stop; it never mutates job state directly.
type Handle struct {
	id     string
	cancel context.CancelFunc
	queue  *eventQueue
	state  atomic.Int32
	done   chan struct{}
	result Result
}

// Start launches the job on its own goroutine and returns immediately.
// Canceling ctx has the same effect as calling Stop.
//
// Events must be drained by the caller; use Run to have that done for you.
func Start(ctx context.Context, spec Spec, opts Options) *Handle {
	if opts.Executor == nil {
		opts.Executor = git.NewExecExecutor()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:     uuid.NewString(),
		cancel: cancel,
		queue:  newEventQueue(),
		done:   make(chan struct{}),
	}

	w := &worker{
		handle:   h,
		spec:     spec,
		opts:     opts,
		log:      opts.Logger,
		redactor: spec.Credentials.Redactor(),
	}
	go w.run(ctx)

	return h
}

// Run starts a job and blocks until it ends, handing every event to onEvent
// (which may be nil) on the calling goroutine.
func Run(ctx context.Context, spec Spec, opts Options, onEvent func(Event)) Result {
	h := Start(ctx, spec, opts)
	for ev := range h.Events() {
		if onEvent != nil {
			onEvent(ev)
		}
	}
	return h.Wait()
}

// ID identifies the job in logs.
func (h *Handle) ID() string {
	return h.id
}

// Events returns the ordered event stream. It is closed after the last event
// once the job has ended.
func (h *Handle) Events() <-chan Event {
	return h.queue.C
}

// Stop requests a cooperative stop. The current iteration finishes first.
func (h *Handle) Stop() {
	h.cancel()
}

// State returns the current state of the job.
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Done is closed when the job has ended and Wait will not block.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the job ends and returns its terminal result.
func (h *Handle) Wait() Result {
	<-h.done
	return h.result
}

// worker owns all job state; only it runs commands and emits events.
type worker struct {
	handle   *Handle
	spec     Spec
	opts     Options
	log      logger.Logger
	redactor *remote.Redactor
	repo     *git.Repo

	commits      int
	bootstrapped bool
}

func (w *worker) run(ctx context.Context) {
	result := w.execute(ctx)

	w.transition(result.State)
	w.log.Info("job %s finished: state=%s push=%s commits=%d", w.handle.id, result.State, result.Push, result.Commits)

	// credentials are not needed past this point
	w.spec.Credentials = remote.Credentials{}

	w.handle.result = result
	w.handle.cancel()
	w.handle.queue.close()
	close(w.handle.done)
}

func (w *worker) execute(ctx context.Context) Result {
	if err := w.spec.Validate(); err != nil {
		return w.fail(err)
	}

	path, err := filepath.Abs(w.spec.RepoPath)
	if err != nil {
		return w.fail(errors.NewJobError(errors.ErrInvalidTarget, err))
	}
	w.repo = git.NewRepo(path, w.opts.Executor).WithRedactor(w.redactor)
	w.log.Info("job %s started: repo=%s count=%d remote=%s", w.handle.id, path, w.spec.Count, w.redactor.Redact(w.spec.RemoteURL))

	w.transition(StateBootstrapping)
	if err := w.bootstrap(ctx); err != nil {
		return w.fail(err)
	}

	w.transition(StateCommitting)
	stopped, err := w.sequence(ctx)
	if err != nil {
		return w.fail(err)
	}
	if stopped {
		return Result{
			Message:      fmt.Sprintf("Operation stopped by user after %d of %d commits", w.commits, w.spec.Count),
			State:        StateStopped,
			Commits:      w.commits,
			Bootstrapped: w.bootstrapped,
			Err:          errors.NewJobError(errors.ErrStopped, nil),
		}
	}

	if w.spec.RemoteURL == "" {
		return w.succeed(PushNone, nil)
	}

	w.transition(StatePushPending)
	outcome, err := w.push(ctx)
	switch outcome {
	case PushPushed:
		w.transition(StatePushed)
	case PushSkipped:
		w.transition(StatePushSkipped)
	case PushFailed:
		w.transition(StatePushFailed)
	}
	return w.succeed(outcome, err)
}

func (w *worker) succeed(push PushOutcome, pushErr error) Result {
	msg := "Operation completed successfully!"
	switch push {
	case PushSkipped:
		msg = fmt.Sprintf("Created %d commits; push skipped", w.commits)
	case PushFailed:
		msg = fmt.Sprintf("Created %d commits, but the push failed: %s", w.commits, w.redactor.Redact(pushErr.Error()))
	}
	return Result{
		Success:      true,
		Message:      msg,
		State:        StateDone,
		Push:         push,
		Commits:      w.commits,
		Bootstrapped: w.bootstrapped,
		Err:          pushErr,
	}
}

func (w *worker) fail(err error) Result {
	msg := "Error: " + w.redactor.Redact(err.Error())
	w.emit(Event{Kind: EventError, Message: msg})
	w.log.Warning("job %s failed: %s", w.handle.id, w.redactor.Redact(err.Error()))
	return Result{
		Message:      msg,
		State:        StateDone,
		Commits:      w.commits,
		Bootstrapped: w.bootstrapped,
		Err:          err,
	}
}

func (w *worker) transition(to State) {
	from := w.handle.State()
	if from == to {
		return
	}
	if !CanTransition(from, to) {
		w.log.Warning("job %s: unexpected transition %s -> %s", w.handle.id, from, to)
	}
	w.handle.state.Store(int32(to))
	w.emit(Event{Kind: EventState, State: to})
}

// status reports a redacted status line.
func (w *worker) status(format string, args ...any) {
	msg := w.redactor.Redact(fmt.Sprintf(format, args...))
	w.log.Info("%s", msg)
	w.emit(Event{Kind: EventStatus, Message: msg})
}

func (w *worker) emit(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = w.opts.Now()
	}
	w.handle.queue.push(ev)
}
