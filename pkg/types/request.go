package types

// RunRequest describes one execution of the organize engine.
//
// ConfigPath and ConfigData are two ways of naming the rules to apply. An
// explicit path is handed to the engine unchanged; an in-memory document is
// bridged through a temporary file. When neither is set the engine falls back
// to its own configuration discovery.
type RunRequest struct {
	// Simulate asks the engine for a dry run that reports what it would do
	Simulate bool

	// Verbose asks the engine for verbose output (direct invocations only)
	Verbose bool

	// ConfigPath is an existing rule file, passed through as-is
	ConfigPath string

	// ConfigData is an in-memory rule document: a mapping with a "rules" sequence
	ConfigData any
}

// Mode returns "simulate" or "run"
func (r RunRequest) Mode() string {
	if r.Simulate {
		return "simulate"
	}
	return "run"
}

// HasConfigData reports whether an in-memory document should be bridged
func (r RunRequest) HasConfigData() bool {
	return r.ConfigPath == "" && r.ConfigData != nil
}
