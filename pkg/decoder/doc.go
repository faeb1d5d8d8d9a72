// Package decoder turns the organize engine's human-oriented output into
// structured results and classified events.
//
// Decode is a single pass over one run's output. It keeps no state between
// calls and starts no goroutines; the only blocking points are reads from
// the supplied readers. Cancellation is cooperative and checked once per
// line through the context.
package decoder
