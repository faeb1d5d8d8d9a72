// Package runner drives one organize engine process at a time.
//
// A Runner resolves the config file through the bridge, chooses between
// the wrapper script and the bare engine command, spawns the child, feeds
// its output through the decoder and reports a final outcome. Run blocks
// until the child exits; Kill and CheckStatus may be called from other
// goroutines while a Run is in flight.
package runner
