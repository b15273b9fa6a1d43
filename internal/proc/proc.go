// Package proc runs one external tool as a child process and streams its
// output incrementally. Each Process is single-use: start, drain Lines(),
// optionally Stop(). Restarting a stream means spawning a new process.
package proc

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

// Line is a single line of child-process output.
type Line struct {
	Text   string
	Stderr bool
}

// maxLineSize is the per-line read ceiling. Tools like dirsearch emit
// carriage-return progress bars without newlines, producing "lines" far
// beyond bufio's 64KB default.
const maxLineSize = 4 * 1024 * 1024

// gracePeriod is how long Stop waits after SIGTERM before force-killing.
const gracePeriod = 500 * time.Millisecond

// Process owns one running child process and its output stream.
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
	lines  chan Line
	done   chan struct{}

	mu       sync.Mutex
	exitCode int
	exited   bool

	stopOnce sync.Once
}

// Start spawns the command with separate stdout/stderr pipes. A spawn
// failure (binary missing, permission denied) is returned here, never
// mid-stream.
func Start(argv []string) (*Process, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", argv[0], err)
	}
	log.WithFields(log.Fields{"tool": argv[0], "pid": cmd.Process.Pid}).Debug("process started")

	p := &Process{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		lines:  make(chan Line, 64),
		done:   make(chan struct{}),
	}
	go p.pump()
	return p, nil
}

// Lines returns the output stream: stdout line-by-line as it arrives,
// then any buffered stderr content once stdout closes. The channel is
// closed exactly once, after the process has been waited on. Per-process
// line order is preserved; the stream is single-pass.
func (p *Process) Lines() <-chan Line {
	return p.lines
}

// pump drains stdout, then stderr, then reaps the process.
func (p *Process) pump() {
	defer close(p.lines)

	sc := bufio.NewScanner(p.stdout)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		if text := cleanLine(sc.Text()); text != "" {
			p.lines <- Line{Text: text}
		}
	}
	if err := sc.Err(); err != nil {
		p.lines <- Line{Text: fmt.Sprintf("reading output: %v", err), Stderr: true}
	}

	// Stdout closed: drain whatever stderr buffered during the run.
	if data, err := io.ReadAll(p.stderr); err == nil {
		for _, raw := range strings.Split(string(data), "\n") {
			if text := cleanLine(raw); text != "" {
				p.lines <- Line{Text: text, Stderr: true}
			}
		}
	}

	err := p.cmd.Wait()
	p.mu.Lock()
	p.exited = true
	p.exitCode = p.cmd.ProcessState.ExitCode()
	p.mu.Unlock()
	close(p.done)

	log.WithFields(log.Fields{"pid": p.cmd.Process.Pid, "exit": p.cmd.ProcessState.ExitCode(), "err": err}).
		Debug("process exited")
}

// Stop terminates the process gracefully: SIGTERM, a bounded grace
// period, then SIGKILL. A process that has already exited is a no-op.
// Stop returns once the process has reached a terminal state.
func (p *Process) Stop() {
	p.stopOnce.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}

		// Signal errors mean the process is already gone — not a failure.
		_ = p.cmd.Process.Signal(syscall.SIGTERM)

		select {
		case <-p.done:
		case <-time.After(gracePeriod):
			_ = p.cmd.Process.Kill()
			<-p.done
		}
	})
}

// ExitCode reports the exit code once the process has exited. The second
// return is false while the process is still running.
func (p *Process) ExitCode() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, p.exited
}

// cleanLine trims trailing whitespace and replaces invalid UTF-8 with the
// substitution character rather than aborting the stream.
func cleanLine(s string) string {
	s = strings.ToValidUTF8(s, "�")
	return strings.TrimRight(s, " \t\r")
}
