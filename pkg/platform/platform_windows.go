//go:build windows

package platform

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

type current struct{}

func (current) Layout() Layout { return WindowsLayout }

func (current) Prepare(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP
}

// MakeExecutable is a no-op: Windows decides by extension.
func (current) MakeExecutable(string) error { return nil }

func (current) Interrupt(p *os.Process) error {
	if p == nil {
		return nil
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(p.Pid))
}

func (current) Terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}
