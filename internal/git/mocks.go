package git

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// Call is one command seen by a RecordingExecutor.
type Call struct {
	Operation string
	Args      []string
}

// String renders the call the way it would be typed after "git".
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Operation
	}
	return c.Operation + " " + strings.Join(c.Args, " ")
}

// RecordingExecutor is a CommandExecutor for tests. It records every git
// invocation and forwards it to Delegate (the real ExecExecutor when nil).
//
// Before may return an error to fail a command without running it.
// After is called once the command has finished.
type RecordingExecutor struct {
	Delegate CommandExecutor
	Before   func(call Call) error
	After    func(call Call, err error)

	mu    sync.Mutex
	calls []Call
}

// NewRecordingExecutor wraps the real executor.
func NewRecordingExecutor() *RecordingExecutor {
	return &RecordingExecutor{Delegate: NewExecExecutor()}
}

// Execute implements CommandExecutor
func (m *RecordingExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	_, err := m.ExecuteWithOutput(ctx, cmd)
	return err
}

// ExecuteWithOutput implements CommandExecutor
func (m *RecordingExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	op, args := splitGitArgs(cmd.Args)
	call := Call{Operation: op, Args: append([]string(nil), args...)}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.Before != nil {
		if err := m.Before(call); err != nil {
			if m.After != nil {
				m.After(call, err)
			}
			return "", err
		}
	}

	delegate := m.Delegate
	if delegate == nil {
		delegate = NewExecExecutor()
	}
	out, err := delegate.ExecuteWithOutput(ctx, cmd)

	if m.After != nil {
		m.After(call, err)
	}
	return out, err
}

// Calls returns a copy of every recorded call, in order.
func (m *RecordingExecutor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Count returns how many recorded calls had the given operation.
func (m *RecordingExecutor) Count(operation string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.Operation == operation {
			n++
		}
	}
	return n
}
