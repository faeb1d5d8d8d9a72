package types

// Status is the outcome of a single item as reported by the engine
type Status string

const (
	StatusMoved       Status = "Moved"
	StatusCopied      Status = "Copied"
	StatusRenamed     Status = "Renamed"
	StatusDeleted     Status = "Deleted"
	StatusSkipped     Status = "Skipped"
	StatusWouldMove   Status = "WouldMove"
	StatusWouldCopy   Status = "WouldCopy"
	StatusWouldRename Status = "WouldRename"
	StatusWouldDelete Status = "WouldDelete"
	StatusError       Status = "Error"
)

// Label returns the human readable form used in tables and reports
func (s Status) Label() string {
	switch s {
	case StatusWouldMove:
		return "Would move"
	case StatusWouldCopy:
		return "Would copy"
	case StatusWouldRename:
		return "Would rename"
	case StatusWouldDelete:
		return "Would delete"
	default:
		return string(s)
	}
}

// Simulated reports whether the status comes from a dry run
func (s Status) Simulated() bool {
	switch s {
	case StatusWouldMove, StatusWouldCopy, StatusWouldRename, StatusWouldDelete:
		return true
	}
	return false
}

// Result is one structured outcome extracted from the engine output.
// Results keep stream arrival order and are never deduplicated.
type Result struct {
	Source string `json:"source"`
	// Destination is empty for deletes, skips and errors
	Destination string `json:"destination,omitempty"`
	Status      Status `json:"status"`
	// Rule is the rule in effect when the line was seen, "" before any rule header
	Rule string `json:"rule"`
}

// CountByStatus tallies results per status
func CountByStatus(results []Result) map[Status]int {
	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
