package types

// Outcome is the terminal value of a run, a kill request or a rejected call.
//
// Success mirrors the child exit status only: a run can succeed while some
// of its Results carry StatusError.
type Outcome struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Results []Result `json:"results,omitempty"`

	// ExitCode is the child exit code, -1 when no process exited
	ExitCode int `json:"exit_code"`

	// RunID identifies the run in the history store, empty when nothing was spawned
	RunID string `json:"run_id,omitempty"`

	// Command is the argv that was executed, empty when nothing was spawned
	Command string `json:"command,omitempty"`

	// Err is the coded error for calls rejected before or at spawn time
	Err error `json:"-"`
}

// Failed builds an outcome for a call that never produced an exit code
func Failed(message string, err error) Outcome {
	return Outcome{
		Success:  false,
		Message:  message,
		ExitCode: -1,
		Err:      err,
	}
}
