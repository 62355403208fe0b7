package job

// State is a step in the lifecycle of a commit job.
//
//	Idle → Bootstrapping → Committing → (PushPending → Pushed | PushSkipped | PushFailed) → Done
//
// Committing may also go straight to Done (failure, or success without a
// remote) or to Stopped after a stop request. Done and Stopped are terminal.
type State int32

const (
	StateIdle State = iota
	StateBootstrapping
	StateCommitting
	StatePushPending
	StatePushed
	StatePushSkipped
	StatePushFailed
	StateDone
	StateStopped
)

var stateNames = map[State]string{
	StateIdle:          "idle",
	StateBootstrapping: "bootstrapping",
	StateCommitting:    "committing",
	StatePushPending:   "push-pending",
	StatePushed:        "pushed",
	StatePushSkipped:   "push-skipped",
	StatePushFailed:    "push-failed",
	StateDone:          "done",
	StateStopped:       "stopped",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions can follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateStopped
}

// transitions lists the legal successors of each non-terminal state.
var transitions = map[State][]State{
	StateIdle:          {StateBootstrapping, StateDone},
	StateBootstrapping: {StateCommitting, StateDone},
	StateCommitting:    {StatePushPending, StateDone, StateStopped},
	StatePushPending:   {StatePushed, StatePushSkipped, StatePushFailed},
	StatePushed:        {StateDone},
	StatePushSkipped:   {StateDone},
	StatePushFailed:    {StateDone},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PushOutcome records what happened to the optional push step.
type PushOutcome int

const (
	// PushNone means no remote URL was given.
	PushNone PushOutcome = iota
	PushPushed
	PushSkipped
	PushFailed
)

func (p PushOutcome) String() string {
	switch p {
	case PushPushed:
		return "pushed"
	case PushSkipped:
		return "skipped"
	case PushFailed:
		return "failed"
	default:
		return "none"
	}
}

// Result is the single terminal notification of a job.
type Result struct {
	// Success is true when every requested commit was created. A failed push
	// does not clear it; check Push and Err for that.
	Success bool

	// Message is a one-line, credential-free summary for display.
	Message string

	// State is StateDone or StateStopped.
	State State

	// Push is the outcome of the optional push step.
	Push PushOutcome

	// Commits counts the commits created by the sequencer, excluding the
	// bootstrap commit.
	Commits int

	// Bootstrapped is true when the job initialized the repository.
	Bootstrapped bool

	// Err is the failure that ended the job (or the push failure), if any.
	// It matches one of the job sentinels in internal/errors.
	Err error
}

// Stopped reports whether the job ended because of a stop request.
func (r Result) Stopped() bool {
	return r.State == StateStopped
}
