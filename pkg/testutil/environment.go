// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Isolated directories for runs against fake engines

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnvironment is a temp directory tree with every XDG dir redirected
// into it, so config, logs and history never touch the real home.
type TestEnvironment struct {
	Root    string
	BaseDir string
	BinDir  string
	Config  string
	Data    string
	State   string

	t *testing.T
}

// NewTestEnvironment creates the tree and points XDG_* and ORGRUN_CONFIG at it.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:    root,
		BaseDir: filepath.Join(root, "app"),
		BinDir:  filepath.Join(root, "bin"),
		Config:  filepath.Join(root, "xdg", "config"),
		Data:    filepath.Join(root, "xdg", "data"),
		State:   filepath.Join(root, "xdg", "state"),
		t:       t,
	}
	for _, dir := range []string{env.BaseDir, env.BinDir, env.Config, env.Data, env.State} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("XDG_CONFIG_HOME", env.Config)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(root, "xdg", "etc"))
	t.Setenv("XDG_DATA_HOME", env.Data)
	t.Setenv("XDG_STATE_HOME", env.State)
	t.Setenv("ORGRUN_CONFIG", "")
	return env
}

// WrapperScript installs a wrapper script at <base>/config/organize-files.sh.
func (env *TestEnvironment) WrapperScript(body string) string {
	env.t.Helper()
	return WriteScript(env.t, filepath.Join(env.BaseDir, "config"), "organize-files.sh", body)
}

// Engine installs a fake organize command in BinDir and returns its path.
func (env *TestEnvironment) Engine(body string) string {
	env.t.Helper()
	return WriteScript(env.t, env.BinDir, "organize", body)
}

// ScriptPath is where WrapperScript writes, whether or not it exists.
func (env *TestEnvironment) ScriptPath() string {
	return filepath.Join(env.BaseDir, "config", "organize-files.sh")
}
