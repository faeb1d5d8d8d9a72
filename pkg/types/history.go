package types

import "time"

// RunRecord is a finished run as kept in the history store
type RunRecord struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Simulate   bool      `json:"simulate"`
	Command    string    `json:"command"`
	Success    bool      `json:"success"`
	ExitCode   int       `json:"exit_code"`
	Message    string    `json:"message"`
	Killed     bool      `json:"killed"`

	// ResultCount is filled by listings that do not load Results
	ResultCount int      `json:"result_count"`
	Results     []Result `json:"results,omitempty"`
}

// Duration returns how long the engine ran
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
