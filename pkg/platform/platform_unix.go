//go:build !windows

package platform

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

type current struct{}

func (current) Layout() Layout { return UnixLayout }

func (current) Prepare(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

func (current) MakeExecutable(path string) error {
	return os.Chmod(path, 0755)
}

func (current) Interrupt(p *os.Process) error {
	return signalGroup(p, unix.SIGINT)
}

func (current) Terminate(p *os.Process) error {
	return signalGroup(p, unix.SIGKILL)
}

// signalGroup signals the whole group (negative pid), falling back to the
// process alone when the group is already gone.
func signalGroup(p *os.Process, sig unix.Signal) error {
	if p == nil {
		return nil
	}
	if err := unix.Kill(-p.Pid, sig); err != nil {
		if err == unix.ESRCH {
			return p.Signal(sig)
		}
		return err
	}
	return nil
}
