//go:build windows

package proc

// Windows has no SIGSTOP/SIGCONT equivalent for arbitrary processes, so
// pause and resume are no-ops there.

func (p *Process) Pause()  {}
func (p *Process) Resume() {}
