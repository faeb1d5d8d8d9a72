// Package testutil provides helpers for testing orgrun components.
//
// Key components:
//   - TestEnvironment: temp base directory with isolated XDG dirs
//   - fake engines: /bin/sh scripts standing in for organize and its wrapper
//   - Recorder: captures output and progress callbacks in arrival order
//   - StaticLocator: a Finder with fixed paths
package testutil
