// Package types defines the core types shared across orgrun.
// This includes the run request handed to the controller, the immutable
// invocation built for the external engine, the structured results decoded
// from its output and the callback plumbing used to report live events.
package types
