// pkg/runner/invocation_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Verify the argv contract for script and direct invocations

package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/orgrun/pkg/types"
)

func TestScriptInvocation(t *testing.T) {
	tests := []struct {
		name   string
		req    types.RunRequest
		config string
		want   []string
	}{
		{"real run", types.RunRequest{}, "", []string{"s.sh", "--run"}},
		{"simulate", types.RunRequest{Simulate: true}, "", []string{"s.sh", "--simulate"}},
		{"with config", types.RunRequest{}, "/c.yaml", []string{"s.sh", "--run", "--config", "/c.yaml"}},
		{"verbose is not forwarded", types.RunRequest{Simulate: true, Verbose: true}, "/c.yaml", []string{"s.sh", "--simulate", "--config", "/c.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := ScriptInvocation("s.sh", tt.req, tt.config)
			assert.Equal(t, types.InvocationScript, inv.Kind())
			assert.Equal(t, tt.want, inv.Argv())
		})
	}
}

func TestDirectInvocation(t *testing.T) {
	tests := []struct {
		name   string
		req    types.RunRequest
		config string
		want   []string
	}{
		{"real run without config", types.RunRequest{}, "", []string{"organize"}},
		{"real run", types.RunRequest{}, "/c.yaml", []string{"organize", "--config-file", "/c.yaml"}},
		{"simulate", types.RunRequest{Simulate: true}, "/c.yaml", []string{"organize", "--config-file", "/c.yaml", "--simulate"}},
		{"simulate verbose", types.RunRequest{Simulate: true, Verbose: true}, "/c.yaml", []string{"organize", "--config-file", "/c.yaml", "--simulate", "--verbose"}},
		{"verbose only", types.RunRequest{Verbose: true}, "", []string{"organize", "--verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := DirectInvocation("organize", tt.req, tt.config)
			assert.Equal(t, types.InvocationDirect, inv.Kind())
			assert.Equal(t, tt.want, inv.Argv())
		})
	}
}
