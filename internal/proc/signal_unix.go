//go:build !windows

package proc

import "syscall"

// Pause suspends the child process with SIGSTOP. The OS buffers pipe
// output, so pausing does not lose lines.
func (p *Process) Pause() {
	if p.cmd.Process != nil {
		p.cmd.Process.Signal(syscall.SIGSTOP)
	}
}

// Resume continues a paused child with SIGCONT. A no-op for a child that
// was never paused or has already exited.
func (p *Process) Resume() {
	if p.cmd.Process != nil {
		p.cmd.Process.Signal(syscall.SIGCONT)
	}
}
