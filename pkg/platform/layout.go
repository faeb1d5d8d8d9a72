// Package platform isolates the OS-specific parts of locating and
// controlling the rule engine.
//
// Layout describes naming conventions and is pure data, so either layout
// can be exercised on any host. Platform adds the process operations that
// only make sense for the OS the binary was built for.
package platform

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Layout captures how an OS names and places executables.
type Layout struct {
	Name string
	// LookupTool resolves a command name against PATH.
	LookupTool string
	// ExeSuffix is appended to executable names ("" or ".exe").
	ExeSuffix string
	// ScriptExt is the wrapper script extension.
	ScriptExt string
	// AdjacentDir is the subdirectory of the runtime directory where
	// installed console scripts live ("" or "Scripts").
	AdjacentDir string
	// SystemDirs are last-resort install locations.
	SystemDirs []string
}

var (
	// UnixLayout covers Linux, macOS and the BSDs.
	UnixLayout = Layout{
		Name:       "unix",
		LookupTool: "which",
		ScriptExt:  ".sh",
		SystemDirs: []string{"/usr/local/bin"},
	}

	// WindowsLayout covers Windows.
	WindowsLayout = Layout{
		Name:        "windows",
		LookupTool:  "where",
		ExeSuffix:   ".exe",
		ScriptExt:   ".bat",
		AdjacentDir: "Scripts",
	}
)

// ScriptFile returns the wrapper script file name for a base name.
func (l Layout) ScriptFile(base string) string {
	return base + l.ScriptExt
}

// AdjacentCommand returns where an installed console script for name would
// sit relative to the directory of the running executable.
func (l Layout) AdjacentCommand(runtimeDir, name string) string {
	if l.AdjacentDir != "" {
		runtimeDir = filepath.Join(runtimeDir, l.AdjacentDir)
	}
	return filepath.Join(runtimeDir, name+l.ExeSuffix)
}

// SystemCommands returns the fixed fallback paths for name.
func (l Layout) SystemCommands(name string) []string {
	out := make([]string, 0, len(l.SystemDirs))
	for _, dir := range l.SystemDirs {
		out = append(out, filepath.Join(dir, name+l.ExeSuffix))
	}
	return out
}

// Platform is the process-level surface the runner needs.
type Platform interface {
	Layout() Layout
	// Prepare configures cmd so the child and its descendants can be
	// signalled as a group.
	Prepare(cmd *exec.Cmd)
	// MakeExecutable marks a script runnable.
	MakeExecutable(path string) error
	// Interrupt asks the process group to stop.
	Interrupt(p *os.Process) error
	// Terminate kills the process group.
	Terminate(p *os.Process) error
}

// Current returns the platform the binary was built for.
func Current() Platform {
	return current{}
}
