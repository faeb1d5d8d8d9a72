package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
)

// process is one spawned child and the plumbing around it.
type process struct {
	gen uint64
	cmd *exec.Cmd

	// stdout is the read end of the output pipe
	stdout *os.File
	// stderr is nil when stderr is merged into stdout
	stderr io.Reader

	// exited is closed once Wait has returned
	exited  chan struct{}
	waitErr error

	// ctx stops decoding; cancelled by Kill
	ctx    context.Context
	cancel context.CancelFunc

	killed    atomic.Bool
	closeOnce sync.Once
}

// exitedReader serves a buffer only after the child has exited, so the
// buffer is complete and no longer written to.
type exitedReader struct {
	exited <-chan struct{}
	buf    *bytes.Buffer
}

func (e *exitedReader) Read(p []byte) (int, error) {
	<-e.exited
	return e.buf.Read(p)
}

// spawn starts inv. Script invocations keep stderr separate; direct ones
// share the stdout pipe so error lines arrive in order.
func (r *Runner) spawn(ctx context.Context, gen uint64, inv types.Invocation) (*process, error) {
	cmd := exec.Command(inv.Executable(), inv.Args()...)
	cmd.WaitDelay = r.opts.KillTimeout

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSpawnFailure, "failed to create output pipe")
	}
	cmd.Stdout = pw

	var stderr io.Reader
	if inv.Kind() == types.InvocationScript {
		buf := &bytes.Buffer{}
		cmd.Stderr = buf
		stderr = buf
	} else {
		cmd.Stderr = pw
	}

	r.opts.Platform.Prepare(cmd)

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, errors.Wrapf(err, errors.ErrSpawnFailure, "failed to start %s", inv.Executable()).
			WithDetail("argv", inv.Argv()).
			WithDetail("kind", string(inv.Kind()))
	}
	// the child holds its own copy; ours must go for EOF to arrive
	_ = pw.Close()

	p := &process{
		gen:    gen,
		cmd:    cmd,
		stdout: pr,
		exited: make(chan struct{}),
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	if buf, ok := stderr.(*bytes.Buffer); ok {
		p.stderr = &exitedReader{exited: p.exited, buf: buf}
	}

	go func() {
		p.waitErr = cmd.Wait()
		close(p.exited)
	}()

	return p, nil
}

// closeOutput releases the read end, unblocking a decoder stuck on a pipe
// still held open by an orphaned grandchild.
func (p *process) closeOutput() {
	p.closeOnce.Do(func() {
		_ = p.stdout.Close()
	})
}

func (p *process) hasExited() bool {
	select {
	case <-p.exited:
		return true
	default:
		return false
	}
}

// exitCode is valid once exited is closed; -1 when killed by a signal.
func (p *process) exitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}
