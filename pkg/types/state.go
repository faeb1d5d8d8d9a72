package types

// State is the lifecycle of a run controller, distinct from the OS process state
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateKilled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateKilled:
		return "killed"
	default:
		return "unknown"
	}
}
