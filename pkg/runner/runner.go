package runner

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/orgrun/pkg/bridge"
	"github.com/arthur-debert/orgrun/pkg/decoder"
	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/locator"
	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/platform"
	"github.com/arthur-debert/orgrun/pkg/types"
)

const (
	DefaultKillTimeout = time.Second

	MsgAlreadyRunning   = "Process already running."
	MsgNotRunning       = "No process is currently running."
	MsgSimulationDone   = "Simulation completed successfully."
	MsgOrganizationDone = "Organization completed successfully."
	MsgStopped          = "Process stopped."
	MsgKilledForcefully = "Process killed forcefully."
	MsgManuallyStopped  = "Process manually stopped."

	recordTimeout = 5 * time.Second
)

// Recorder persists finished runs.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) error
}

// Options configure a Runner. Zero values select the real system.
type Options struct {
	Locator  locator.Finder
	Platform platform.Platform
	Bridge   *bridge.Bridge
	Decoder  decoder.Options

	// KillTimeout is how long Kill waits after the interrupt before
	// terminating forcefully.
	KillTimeout time.Duration

	// Recorder, if set, receives every spawned run.
	Recorder Recorder

	// Exists decides whether the wrapper script is present.
	Exists func(path string) bool

	Logger *zerolog.Logger
}

// Runner owns at most one engine process at a time.
type Runner struct {
	opts   Options
	logger zerolog.Logger

	mu    sync.Mutex
	state types.State
	// gen increments on every accepted Run; stale runs never write state
	gen  uint64
	busy bool
	proc *process
}

// New creates a Runner. The locator is resolved here, once, when not given.
func New(opts Options) *Runner {
	if opts.Platform == nil {
		opts.Platform = platform.Current()
	}
	if opts.Locator == nil {
		opts.Locator = locator.Find(context.Background(), locator.Options{Layout: opts.Platform.Layout()})
	}
	if opts.Bridge == nil {
		opts.Bridge = bridge.NewOS()
	}
	if opts.KillTimeout <= 0 {
		opts.KillTimeout = DefaultKillTimeout
	}
	if opts.Exists == nil {
		opts.Exists = func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		}
	}
	logger := logging.GetLogger("runner")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Runner{opts: opts, logger: logger}
}

// State returns the lifecycle state.
func (r *Runner) State() types.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run executes one request and blocks until the child exits. A second call
// while a run is in flight is rejected without touching that run.
// Cancelling ctx kills the child.
func (r *Runner) Run(ctx context.Context, req types.RunRequest, cb types.Callbacks) types.Outcome {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		r.logger.Warn().Msg("Run rejected, another run is in flight")
		cb.Emit(MsgAlreadyRunning, types.TagError)
		return types.Failed(MsgAlreadyRunning, errors.New(errors.ErrAlreadyRunning, MsgAlreadyRunning))
	}
	r.busy = true
	r.gen++
	gen := r.gen
	r.mu.Unlock()
	defer r.release(gen)

	done := logging.LogOperationStart(r.logger, "run")
	defer done()

	resolved, err := r.opts.Bridge.Resolve(req)
	if err != nil {
		msg := errors.UserMessage(err)
		if errors.IsErrorCode(err, errors.ErrInvalidConfig) {
			msg = "Invalid config_data provided: " + msg
		}
		r.logger.Error().Err(err).Msg("Config bridge failed")
		cb.Emit(msg, types.TagError)
		return types.Failed(msg, err)
	}
	defer r.releaseConfig(resolved, cb)

	cb.Report(0, "Starting...")

	inv := r.invocation(req, resolved.Path, cb)
	logging.LogCommand(inv.Executable(), inv.Args())

	started := time.Now()
	p, err := r.spawn(ctx, gen, inv)
	if err != nil {
		msg := "Error running process: " + errors.UserMessage(err)
		r.logger.Error().Err(err).Str("command", inv.String()).Msg("Spawn failed")
		cb.Emit(msg, types.TagError)
		out := types.Failed(msg, err)
		out.Command = inv.String()
		return out
	}

	r.mu.Lock()
	r.state = types.StateRunning
	r.proc = p
	r.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		r.logger.Info().Msg("Run context cancelled, stopping process")
		r.stop(p)
	})
	defer stop()

	r.logger.Info().
		Str("command", inv.String()).
		Str("kind", string(inv.Kind())).
		Str("mode", req.Mode()).
		Msg("Process started")
	cb.Emit("Running command: "+inv.String(), types.TagInfo)

	results := decoder.Decode(p.ctx, p.stdout, p.stderr, cb, r.opts.Decoder)
	p.closeOutput()
	<-p.exited
	p.cancel()

	code := p.exitCode()
	killed := p.killed.Load()
	if killed {
		cb.Emit(MsgManuallyStopped, types.TagWarning)
	}

	r.mu.Lock()
	if r.proc == p {
		if killed {
			r.state = types.StateKilled
		} else {
			r.state = types.StateCompleted
		}
		r.proc = nil
	}
	r.mu.Unlock()

	out := types.Outcome{
		Success:  code == 0,
		Results:  results,
		ExitCode: code,
		Command:  inv.String(),
	}
	if out.Success {
		out.Message = MsgOrganizationDone
		if req.Simulate {
			out.Message = MsgSimulationDone
		}
		cb.Emit(out.Message, types.TagSuccess)
	} else {
		out.Message = fmt.Sprintf("Process failed with exit code %d", code)
		out.Err = errors.New(errors.ErrNonZeroExit, out.Message).WithDetail("exit_code", code)
		cb.Emit(out.Message, types.TagError)
	}
	cb.Report(100, "Complete")

	r.logger.Info().
		Int("exitCode", code).
		Bool("killed", killed).
		Int("results", len(results)).
		Msg("Process finished")

	out.RunID = r.record(ctx, req, inv, out, killed, started)
	return out
}

// invocation prefers the wrapper script when it exists right now.
func (r *Runner) invocation(req types.RunRequest, configPath string, cb types.Callbacks) types.Invocation {
	script := r.opts.Locator.ScriptPath()
	if script != "" && r.opts.Exists(script) {
		if err := r.opts.Platform.MakeExecutable(script); err != nil {
			r.logger.Warn().Err(err).Str("script", script).Msg("Could not make script executable")
			cb.Emit(fmt.Sprintf("Warning: could not make %s executable: %v", script, err), types.TagWarning)
		}
		if req.Verbose {
			r.logger.Debug().Msg("Verbose flag is not passed to the wrapper script")
		}
		return ScriptInvocation(script, req, configPath)
	}
	r.logger.Debug().Str("script", script).Msg("Wrapper script not found, invoking engine directly")
	return DirectInvocation(r.opts.Locator.CommandPath(), req, configPath)
}

func (r *Runner) releaseConfig(res bridge.Resolved, cb types.Callbacks) {
	if !res.Temporary {
		return
	}
	if err := r.opts.Bridge.Release(res); err != nil {
		r.logger.Error().Err(err).Str("path", res.Path).Msg("Failed to delete temporary config file")
		cb.Emit(errors.UserMessage(err), types.TagError)
		return
	}
	r.logger.Debug().Str("path", res.Path).Msg("Deleted temporary config file")
	cb.Emit("Deleted temporary config file: "+res.Path, types.TagDebug)
}

// release clears the busy flag unless Kill already handed the controller
// to a newer run.
func (r *Runner) release(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == gen {
		r.busy = false
	}
}

func (r *Runner) record(ctx context.Context, req types.RunRequest, inv types.Invocation, out types.Outcome, killed bool, started time.Time) string {
	if r.opts.Recorder == nil {
		return ""
	}
	id, err := uuid.NewV7()
	if err != nil {
		r.logger.Warn().Err(err).Msg("Could not generate run id")
		return ""
	}
	rec := types.RunRecord{
		ID:          id.String(),
		StartedAt:   started,
		FinishedAt:  time.Now(),
		Simulate:    req.Simulate,
		Command:     inv.String(),
		Success:     out.Success,
		ExitCode:    out.ExitCode,
		Message:     out.Message,
		Killed:      killed,
		ResultCount: len(out.Results),
		Results:     out.Results,
	}

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := r.opts.Recorder.Record(rctx, rec); err != nil {
		r.logger.Warn().Err(err).Str("runID", rec.ID).Msg("Could not record run history")
		return ""
	}
	return rec.ID
}

// Kill stops the running child: interrupt first, then terminate after
// KillTimeout. The controller is Idle afterwards.
func (r *Runner) Kill() types.Outcome {
	r.mu.Lock()
	p := r.proc
	r.mu.Unlock()

	if p == nil {
		return types.Failed(MsgNotRunning, errors.New(errors.ErrNotRunning, MsgNotRunning))
	}

	forced := r.stop(p)

	r.mu.Lock()
	if r.gen == p.gen {
		r.state = types.StateIdle
		r.proc = nil
		r.busy = false
	}
	r.mu.Unlock()

	msg := MsgStopped
	if forced {
		msg = MsgKilledForcefully
	}
	r.logger.Info().Bool("forced", forced).Msg(msg)
	return types.Outcome{Success: true, Message: msg, ExitCode: p.exitCode()}
}

// stop signals p and waits for it. It reports whether termination had to
// be forced. Safe to call more than once.
func (r *Runner) stop(p *process) (forced bool) {
	p.killed.Store(true)
	p.cancel()
	defer p.closeOutput()

	if p.hasExited() {
		return false
	}

	if err := r.opts.Platform.Interrupt(p.cmd.Process); err != nil {
		r.logger.Debug().Err(err).Msg("Interrupt failed")
	}

	timer := time.NewTimer(r.opts.KillTimeout)
	defer timer.Stop()
	select {
	case <-p.exited:
		return false
	case <-timer.C:
	}

	r.logger.Warn().Dur("timeout", r.opts.KillTimeout).Msg("Process ignored interrupt, terminating")
	if err := r.opts.Platform.Terminate(p.cmd.Process); err != nil {
		r.logger.Debug().Err(err).Msg("Terminate failed")
	}
	<-p.exited
	return true
}

// CheckStatus polls without blocking. It returns true while the child is
// alive; once it has exited the state becomes Completed or Killed.
func (r *Runner) CheckStatus() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.proc
	if p == nil {
		return false
	}
	if !p.hasExited() {
		return true
	}
	if p.killed.Load() {
		r.state = types.StateKilled
	} else {
		r.state = types.StateCompleted
	}
	return false
}
