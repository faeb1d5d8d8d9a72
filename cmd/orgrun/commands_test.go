//go:build !windows

// cmd/orgrun/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: /bin/sh fake engines, temp XDG directories, SQLite
// PURPOSE: Drive the CLI end to end against fake wrapper scripts

package orgrun

import (
	"bufio"
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/testutil"
)

func setupCLI(t *testing.T) *testutil.TestEnvironment {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	t.Setenv("ORGRUN_ENGINE_BASE_DIR", env.BaseDir)
	t.Setenv("ORGRUN_ENGINE_NAME", filepath.Join(env.BinDir, "organize"))
	t.Setenv("NO_COLOR", "1")
	return env
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func jsonLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		lines = append(lines, m)
	}
	return lines
}

func TestSimulateWithWrapperScript(t *testing.T) {
	env := setupCLI(t)
	env.WrapperScript(testutil.SampleSimulation)

	out, err := execute(t, "simulate", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Running command: "+env.ScriptPath()+" --simulate")
	assert.Contains(t, out, `Would move "a.txt" to "/d/a.txt"`)
	assert.Contains(t, out, "Simulation completed successfully.")
	assert.Contains(t, out, "1 result: 1 Would move")
	assert.NotContains(t, out, "Deleted temporary config file", "debug events are hidden by default")
}

func TestRunJSONAndHistory(t *testing.T) {
	env := setupCLI(t)
	env.WrapperScript(testutil.SampleRun)

	out, err := execute(t, "run", "--format", "json")
	require.NoError(t, err)

	lines := jsonLines(t, out)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	require.Equal(t, "outcome", last["type"])
	outcome := last["outcome"].(map[string]any)
	assert.Equal(t, true, outcome["success"])
	runID, _ := outcome["run_id"].(string)
	require.NotEmpty(t, runID)

	out, err = execute(t, "history", "list", "--format", "json")
	require.NoError(t, err)
	listed := jsonLines(t, out)
	require.Len(t, listed, 1)
	runs := listed[0]["runs"].([]any)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].(map[string]any)["id"])

	out, err = execute(t, "history", "show", runID, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "# Run "+runID)
	assert.Contains(t, out, "/d/a.txt")
	assert.Contains(t, out, "Moved")
}

func TestRunWithRulesDocument(t *testing.T) {
	env := setupCLI(t)
	env.WrapperScript(testutil.CatConfig)
	rules := testutil.CreateFile(t, env.Root, "rules.yaml", "rules:\n  - name: Move Docs\n    locations: ~/Downloads\n")

	out, err := execute(t, "simulate", "--rules", rules, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "- name: Move Docs")

	var tempPath string
	for _, line := range strings.Split(out, "\n") {
		if p, ok := strings.CutPrefix(line, "config: "); ok {
			tempPath = p
		}
	}
	require.NotEmpty(t, tempPath)
	assert.Contains(t, filepath.Base(tempPath), "orgrun-config-")
	assert.False(t, testutil.FileExists(t, tempPath), "temporary config must be removed after the run")
}

func TestRunFailureExitCode(t *testing.T) {
	env := setupCLI(t)
	env.WrapperScript("echo 'Error: boom'\nexit 3\n")

	out, err := execute(t, "run", "--format", "text")
	require.Error(t, err)
	assert.Equal(t, ExitRunFailed, ExitCode(err))
	assert.Contains(t, out, "Process failed with exit code 3")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Reported())
}

func TestRunRejectsBothConfigSources(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "run", "--config", "a.yaml", "--rules", "b.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestRunInvalidRulesDocument(t *testing.T) {
	env := setupCLI(t)
	env.WrapperScript(testutil.SampleRun)
	bad := testutil.CreateFile(t, env.Root, "bad.yaml", "rules: nope\n")

	_, err := execute(t, "run", "--rules", bad)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidConfig))
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLI(t)
	t.Setenv("ORGRUN_HISTORY_ENABLED", "false")
	env.WrapperScript(testutil.SampleRun)

	_, err := execute(t, "run", "--format", "text")
	require.NoError(t, err)

	out, err := execute(t, "history", "list", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, MsgHistoryDisabled)
	assert.False(t, testutil.FileExists(t, filepath.Join(env.Data, "orgrun", "history.db")))
}

func TestHistoryShowUnknown(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "history", "show", "missing-id")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestLocate(t *testing.T) {
	env := setupCLI(t)

	out, err := execute(t, "locate", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "script:  "+env.ScriptPath()+" (missing)")
	assert.Contains(t, out, "mode:    direct")

	env.WrapperScript(testutil.SampleRun)
	out, err = execute(t, "locate", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "(found)")
	assert.Contains(t, out, "mode:    script")
}

func TestValidate(t *testing.T) {
	env := setupCLI(t)
	good := testutil.CreateFile(t, env.Root, "good.yaml", "rules:\n  - name: Docs\n  - locations: ~/x\n")
	bad := testutil.CreateFile(t, env.Root, "bad.yaml", "rules: {}\n")

	out, err := execute(t, "validate", good, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 2 rules")
	assert.Contains(t, out, "  - Docs")
	assert.Contains(t, out, "  - rule #2")

	out, err = execute(t, "validate", bad, "--format", "text")
	require.Error(t, err)
	assert.Equal(t, ExitRunFailed, ExitCode(err))
	assert.Contains(t, out, "Error: 'rules' must be a sequence")
}

func TestConfigCommand(t *testing.T) {
	setupCLI(t)
	t.Setenv("ORGRUN_RUNNER_KILL_TIMEOUT", "3s")

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[runner]")
	assert.Contains(t, out, "kill_timeout = '3s'")
}

func TestVersionAndCompletion(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "orgrun version")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "orgrun")

	_, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestManPages(t *testing.T) {
	setupCLI(t)
	dir := filepath.Join(t.TempDir(), "man")

	_, err := execute(t, "man", dir)
	require.NoError(t, err)
	assert.True(t, testutil.FileExists(t, filepath.Join(dir, "orgrun.1")))
	assert.True(t, testutil.FileExists(t, filepath.Join(dir, "orgrun-run.1")))
}

func TestUnknownFormat(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "locate", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitCommandError, ExitCode(assert.AnError))
	assert.Equal(t, ExitRunFailed, ExitCode(&ExitError{Code: ExitRunFailed}))
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
	assert.Equal(t, assert.AnError.Error(), (&ExitError{Code: 2, Err: assert.AnError}).Error())
}

func TestHelpTopics(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "  engine-output")
	assert.Contains(t, out, "  wrapper-script")
	assert.Contains(t, out, "  --rules")

	out, err = execute(t, "help", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "cannot be combined")
}
