package runner

import (
	"github.com/arthur-debert/orgrun/pkg/types"
)

// ScriptInvocation builds `<script> --run|--simulate [--config <path>]`.
func ScriptInvocation(script string, req types.RunRequest, configPath string) types.Invocation {
	args := []string{"--run"}
	if req.Simulate {
		args[0] = "--simulate"
	}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return types.NewInvocation(types.InvocationScript, script, args...)
}

// DirectInvocation builds `<engine> [--config-file <path>] [--simulate] [--verbose]`.
func DirectInvocation(engine string, req types.RunRequest, configPath string) types.Invocation {
	var args []string
	if configPath != "" {
		args = append(args, "--config-file", configPath)
	}
	if req.Simulate {
		args = append(args, "--simulate")
	}
	if req.Verbose {
		args = append(args, "--verbose")
	}
	return types.NewInvocation(types.InvocationDirect, engine, args...)
}
