// Package version holds build information injected at link time.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/arthur-debert/orgrun/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the build information, filling gaps from the module build
// info when the binary was built with go install.
func Info() (version, commit, date string) {
	version, commit, date = Version, Commit, Date
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "unknown" {
				date = s.Value
			}
		}
	}
	return
}

// String is the one-line form used by --version and man pages.
func String() string {
	v, c, _ := Info()
	if c == "unknown" {
		return v
	}
	if len(c) > 12 {
		c = c[:12]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}
