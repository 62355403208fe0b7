package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/commitgen/internal/job"
)

type fakeJob struct {
	events chan job.Event
	stops  int
	result job.Result
}

func newFakeJob(result job.Result) *fakeJob {
	return &fakeJob{
		events: make(chan job.Event, 16),
		result: result,
	}
}

func (f *fakeJob) Events() <-chan job.Event { return f.events }

func (f *fakeJob) Stop() { f.stops++ }

func (f *fakeJob) Wait() job.Result { return f.result }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func key(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelAppliesEvents(t *testing.T) {
	fj := newFakeJob(job.Result{})
	m := NewModel(fj, "/repo", 4)

	m, cmd := update(t, m, eventMsg(job.Event{Kind: job.EventStatus, Message: "Creating commits..."}))
	require.NotNil(t, cmd, "the model keeps listening for events")
	m, _ = update(t, m, eventMsg(job.Event{Kind: job.EventProgress, Progress: 0.5, Commit: 2, Total: 4}))
	m, _ = update(t, m, eventMsg(job.Event{Kind: job.EventState, State: job.StateCommitting}))
	m, _ = update(t, m, eventMsg(job.Event{Kind: job.EventError, Message: "Error: boom"}))

	assert.Equal(t, "Creating commits...", m.status)
	assert.Equal(t, 0.5, m.percent)
	assert.Equal(t, 2, m.commit)
	assert.Equal(t, job.StateCommitting, m.state)
	require.Len(t, m.log, 2)
	assert.True(t, m.log[1].isErr)

	view := m.View()
	assert.Contains(t, view, "/repo")
	assert.Contains(t, view, "2/4")
	assert.Contains(t, view, "Creating commits...")
	assert.Contains(t, view, "Error: boom")
	assert.Contains(t, view, "s: stop")
}

func TestModelKeepsRecentLog(t *testing.T) {
	m := NewModel(newFakeJob(job.Result{}), "/repo", 20)
	for i := 0; i < 20; i++ {
		m, _ = update(t, m, eventMsg(job.Event{Kind: job.EventStatus, Message: strings.Repeat("x", i+1)}))
	}
	require.Len(t, m.log, logLines)
	assert.Equal(t, strings.Repeat("x", 20), m.log[logLines-1].text)
}

func TestStopKeyAsksForConfirmation(t *testing.T) {
	fj := newFakeJob(job.Result{})
	m := NewModel(fj, "/repo", 10)

	m, cmd := update(t, m, key("s"))
	assert.False(t, isQuit(cmd))
	assert.True(t, m.confirming)
	assert.False(t, m.stopping)
	assert.Equal(t, 0, fj.stops, "nothing is stopped before the answer")
	assert.Contains(t, m.View(), "Stop after the current commit? (y/n)")

	m, _ = update(t, m, key("n"))
	assert.False(t, m.confirming)
	assert.Equal(t, 0, fj.stops)
	assert.Contains(t, m.View(), "s: stop")

	m, _ = update(t, m, key("s"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.confirming)
	assert.Equal(t, 0, fj.stops)

	// "y" means nothing without a pending question
	m, _ = update(t, m, key("y"))
	assert.False(t, m.stopping)
	assert.Equal(t, 0, fj.stops)
}

func TestConfirmationEndsWithResult(t *testing.T) {
	done := job.Result{Success: true, State: job.StateDone, Commits: 2, Message: "Operation completed successfully!"}
	fj := newFakeJob(done)
	m := NewModel(fj, "/repo", 2)

	m, _ = update(t, m, key("s"))
	require.True(t, m.confirming)

	m, _ = update(t, m, resultMsg(done))
	assert.False(t, m.confirming)
	assert.Contains(t, m.View(), "q: quit")

	m, _ = update(t, m, key("y"))
	assert.Equal(t, 0, fj.stops)
	assert.False(t, m.stopping)
}

func TestStopKey(t *testing.T) {
	fj := newFakeJob(job.Result{})
	m := NewModel(fj, "/repo", 10)

	m, _ = update(t, m, key("s"))
	m, cmd := update(t, m, key("y"))
	assert.False(t, isQuit(cmd))
	assert.False(t, m.confirming)
	assert.True(t, m.stopping)
	assert.Equal(t, 1, fj.stops)
	assert.Contains(t, m.View(), "stopping...")

	m, _ = update(t, m, key("s"))
	m, _ = update(t, m, key("y"))
	assert.False(t, m.confirming, "no question once stopping")
	assert.Equal(t, 1, fj.stops, "stop is requested once")

	// status lines keep flowing into the log but not the headline
	m, _ = update(t, m, eventMsg(job.Event{Kind: job.EventStatus, Message: "Created commit 3/10"}))
	assert.Equal(t, "Stopping after the current commit...", m.status)
}

func TestQuitWaitsForResult(t *testing.T) {
	stopped := job.Result{State: job.StateStopped, Commits: 3, Message: "Operation stopped by user after 3 of 10 commits"}
	fj := newFakeJob(stopped)
	m := NewModel(fj, "/repo", 10)

	m, cmd := update(t, m, key("q"))
	assert.False(t, isQuit(cmd), "quit waits for the job to end")
	assert.True(t, m.quitting)
	assert.Equal(t, 1, fj.stops)

	close(fj.events)
	m, cmd = update(t, m, eventsDoneMsg{})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, resultMsg(stopped), msg)

	m, cmd = update(t, m, msg)
	assert.True(t, isQuit(cmd))

	res, ok := m.Result()
	require.True(t, ok)
	assert.True(t, res.Stopped())
	assert.Contains(t, m.View(), "Operation stopped by user after 3 of 10 commits")
}

func TestResultWithoutQuitStaysOpen(t *testing.T) {
	done := job.Result{Success: true, State: job.StateDone, Commits: 2, Message: "Operation completed successfully!"}
	m := NewModel(newFakeJob(done), "/repo", 2)

	m, cmd := update(t, m, resultMsg(done))
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "q: quit")

	_, cmd = update(t, m, key("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestWindowResize(t *testing.T) {
	m := NewModel(newFakeJob(job.Result{}), "/repo", 1)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 28, m.progress.Width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 500, Height: 20})
	assert.Equal(t, 80, m.progress.Width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 5, Height: 20})
	assert.Equal(t, 10, m.progress.Width)
}

func TestWaitForEventReportsClose(t *testing.T) {
	events := make(chan job.Event, 1)
	events <- job.Event{Kind: job.EventStatus, Message: "hi"}
	close(events)

	assert.Equal(t, eventMsg(job.Event{Kind: job.EventStatus, Message: "hi"}), waitForEvent(events)())
	assert.Equal(t, eventsDoneMsg{}, waitForEvent(events)())
}

func TestRunStopsJobWhenContextCanceled(t *testing.T) {
	fj := newFakeJob(job.Result{State: job.StateStopped})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	res, err := Run(ctx, fj, "/repo", 3, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.True(t, res.Stopped())
	assert.GreaterOrEqual(t, fj.stops, 1)
}
