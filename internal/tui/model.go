package tui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bashhack/commitgen/internal/job"
)

// logLines is how many recent status lines the view keeps.
const logLines = 8

// Job is the part of a running job the view needs. *job.Handle implements it.
type Job interface {
	Events() <-chan job.Event
	Stop()
	Wait() job.Result
}

type (
	eventMsg      job.Event
	eventsDoneMsg struct{}
	resultMsg     job.Result
)

// Model is the bubbletea model for a single commit job.
type Model struct {
	job      Job
	repoPath string
	total    int

	progress progress.Model
	percent  float64
	commit   int
	status   string
	log      []logEntry
	state    job.State

	confirming bool
	stopping   bool
	quitting   bool
	result     *job.Result
}

type logEntry struct {
	text  string
	isErr bool
}

// NewModel builds the view for j, which creates total commits in repoPath.
func NewModel(j Job, repoPath string, total int) Model {
	return Model{
		job:      j,
		repoPath: repoPath,
		total:    total,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		status:   "Starting...",
	}
}

// Result returns the job's terminal result once it has arrived.
func (m Model) Result() (job.Result, bool) {
	if m.result == nil {
		return job.Result{}, false
	}
	return *m.result, true
}

// Run shows the progress view until the job ends and returns its result.
// Quitting the view stops the job first, so the result is always terminal.
func Run(ctx context.Context, j Job, repoPath string, total int, in io.Reader, out io.Writer) (job.Result, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}

	final, err := tea.NewProgram(NewModel(j, repoPath, total), opts...).Run()
	if err != nil {
		j.Stop()
		res := j.Wait()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			// interrupted by a signal; the stopped result says enough
			return res, nil
		}
		return res, err
	}

	if res, ok := final.(Model).Result(); ok {
		return res, nil
	}
	// the program ended without the result, e.g. ctx was canceled
	j.Stop()
	return j.Wait(), nil
}

func waitForEvent(events <-chan job.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsDoneMsg{}
		}
		return eventMsg(ev)
	}
}

func waitForResult(j Job) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(j.Wait())
	}
}
