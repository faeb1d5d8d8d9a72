// Package locator finds the organize engine and its optional wrapper script.
//
// Both lookups are best effort and never fail: when nothing usable is found
// they return a plausible default so the caller can still build a command
// line and let the spawn report the problem.
package locator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/platform"
)

// lookupTimeout bounds the which/where call.
const lookupTimeout = 5 * time.Second

// LookupFunc runs the system lookup tool; a nil error means the command was
// found on the search path.
type LookupFunc func(ctx context.Context, tool, name string) error

// Finder is what the run controller needs from a locator.
type Finder interface {
	CommandPath() string
	ScriptPath() string
}

// Options configure a search. Zero values fall back to the real system.
type Options struct {
	EngineName string
	ScriptName string
	// BaseDir is where the wrapper script is searched first; defaults to
	// the directory of the running executable.
	BaseDir string
	Layout  platform.Layout

	Lookup     LookupFunc
	Executable func() (string, error)
	Exists     func(path string) bool

	// ExtraScriptDirs are searched after the base-relative candidates.
	// nil means the orgrun XDG config directory.
	ExtraScriptDirs []string
}

// Locator is the result of one search, computed once and then injected.
type Locator struct {
	Command string
	Script  string
}

// CommandPath returns the engine command to start
func (l Locator) CommandPath() string { return l.Command }

// ScriptPath returns the wrapper script path, which may not exist
func (l Locator) ScriptPath() string { return l.Script }

// Find resolves both the engine command and the wrapper script.
func Find(ctx context.Context, opts Options) Locator {
	opts = opts.withDefaults()
	return Locator{
		Command: FindCommand(ctx, opts),
		Script:  FindScript(opts),
	}
}

func (o Options) withDefaults() Options {
	if o.EngineName == "" {
		o.EngineName = "organize"
	}
	if o.ScriptName == "" {
		o.ScriptName = "organize-files"
	}
	if o.Layout.Name == "" {
		o.Layout = platform.Current().Layout()
	}
	if o.Lookup == nil {
		o.Lookup = SystemLookup
	}
	if o.Executable == nil {
		o.Executable = os.Executable
	}
	if o.Exists == nil {
		o.Exists = fileExists
	}
	if o.ExtraScriptDirs == nil {
		o.ExtraScriptDirs = []string{filepath.Join(xdg.ConfigHome, "orgrun")}
	}
	return o
}

// FindCommand returns the bare engine name when the system lookup succeeds,
// otherwise the first existing fallback, otherwise the bare name anyway.
func FindCommand(ctx context.Context, opts Options) string {
	opts = opts.withDefaults()
	logger := logging.GetLogger("locator")
	name := opts.EngineName

	if lookup(ctx, logger, opts, name) {
		logger.Debug().Str("command", name).Msg("Engine found on search path")
		return name
	}

	for _, candidate := range commandFallbacks(opts) {
		if opts.Exists(candidate) {
			logger.Debug().Str("command", candidate).Msg("Engine found at fallback location")
			return candidate
		}
	}

	logger.Debug().Str("command", name).Msg("Engine not found, using bare name")
	return name
}

// lookup runs the lookup tool, treating errors and panics as "not found".
func lookup(ctx context.Context, logger zerolog.Logger, opts Options, name string) (found bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug().Interface("panic", r).Msg("Engine lookup panicked")
			found = false
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if err := opts.Lookup(ctx, opts.Layout.LookupTool, name); err != nil {
		logger.Debug().Err(err).Str("tool", opts.Layout.LookupTool).Msg("Engine lookup failed")
		return false
	}
	return true
}

func commandFallbacks(opts Options) []string {
	var out []string
	if exe, err := opts.Executable(); err == nil && exe != "" {
		out = append(out, opts.Layout.AdjacentCommand(filepath.Dir(exe), opts.EngineName))
	}
	return append(out, opts.Layout.SystemCommands(opts.EngineName)...)
}

// FindScript returns the first existing wrapper script candidate, or the
// first candidate when none exists.
func FindScript(opts Options) string {
	opts = opts.withDefaults()
	candidates := ScriptCandidates(opts)
	for _, candidate := range candidates {
		if opts.Exists(candidate) {
			return candidate
		}
	}
	return candidates[0]
}

// ScriptCandidates lists wrapper script locations in search order.
func ScriptCandidates(opts Options) []string {
	opts = opts.withDefaults()
	file := opts.Layout.ScriptFile(opts.ScriptName)
	base := baseDir(opts)
	parent := filepath.Dir(base)

	candidates := []string{
		filepath.Join(base, "config", file),
		filepath.Join(base, file),
		filepath.Join(parent, "config", file),
		filepath.Join(parent, file),
	}
	for _, dir := range opts.ExtraScriptDirs {
		candidates = append(candidates, filepath.Join(dir, file))
	}
	return candidates
}

func baseDir(opts Options) string {
	if opts.BaseDir != "" {
		return opts.BaseDir
	}
	if exe, err := opts.Executable(); err == nil && exe != "" {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// SystemLookup runs the lookup tool and reports success by exit status.
func SystemLookup(ctx context.Context, tool, name string) error {
	cmd := exec.CommandContext(ctx, tool, name)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", tool, name, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
