package types

import "strings"

// InvocationKind selects how the engine is started
type InvocationKind string

const (
	// InvocationScript runs the wrapper script that bundles the engine call
	InvocationScript InvocationKind = "script"

	// InvocationDirect runs the engine executable directly
	InvocationDirect InvocationKind = "direct"
)

// Invocation is the exact command line used for one run.
// It is built once per run and never modified afterwards.
type Invocation struct {
	kind       InvocationKind
	executable string
	args       []string
}

// NewInvocation creates an invocation, copying args
func NewInvocation(kind InvocationKind, executable string, args ...string) Invocation {
	return Invocation{
		kind:       kind,
		executable: executable,
		args:       append([]string(nil), args...),
	}
}

// Kind returns the invocation strategy
func (i Invocation) Kind() InvocationKind { return i.kind }

// Executable returns the program that is started
func (i Invocation) Executable() string { return i.executable }

// Args returns a copy of the arguments passed after the executable
func (i Invocation) Args() []string {
	return append([]string(nil), i.args...)
}

// Argv returns the full argument vector, executable first
func (i Invocation) Argv() []string {
	return append([]string{i.executable}, i.args...)
}

// String renders the argv joined by spaces, as shown to users
func (i Invocation) String() string {
	return strings.Join(i.Argv(), " ")
}
