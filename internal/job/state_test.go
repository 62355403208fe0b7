package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateBootstrapping, true},
		{StateBootstrapping, StateCommitting, true},
		{StateCommitting, StatePushPending, true},
		{StateCommitting, StateStopped, true},
		{StateCommitting, StateDone, true},
		{StatePushPending, StatePushFailed, true},
		{StatePushFailed, StateDone, true},
		{StateBootstrapping, StateStopped, false},
		{StatePushPending, StateStopped, false},
		{StateDone, StateCommitting, false},
		{StateStopped, StateDone, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateStopped.Terminal())
	assert.False(t, StatePushed.Terminal())
	assert.Equal(t, "push-skipped", StatePushSkipped.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "failed", PushFailed.String())
}

func TestEventQueuePreservesOrder(t *testing.T) {
	q := newEventQueue()

	const n = 1000
	for i := 0; i < n; i++ {
		q.push(Event{Commit: i})
	}
	q.close()
	q.push(Event{Commit: -1})

	got := 0
	for ev := range q.C {
		assert.Equal(t, got, ev.Commit)
		got++
	}
	assert.Equal(t, n, got)
}

func TestTrackingLines(t *testing.T) {
	assert.Equal(t, "Commit 7 at 2024-01-02 03:04:05", commitLine(7, "2024-01-02 03:04:05"))
	assert.Equal(t, "Commit 7: Made at 2024-01-02 03:04:05", commitMessage(7, "2024-01-02 03:04:05"))
}
