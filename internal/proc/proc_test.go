package proc

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests use sh fixtures")
	}
}

func collect(t *testing.T, p *Process) []Line {
	t.Helper()
	var lines []Line
	for line := range p.Lines() {
		lines = append(lines, line)
	}
	return lines
}

func TestStreamPreservesStdoutOrder(t *testing.T) {
	skipOnWindows(t)

	p, err := Start([]string{"sh", "-c", "for i in 1 2 3 4 5; do echo line$i; done"})
	if err != nil {
		t.Fatal(err)
	}

	lines := collect(t, p)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %v", len(lines), lines)
	}
	for i, line := range lines {
		want := "line" + string(rune('1'+i))
		if line.Text != want {
			t.Errorf("line %d = %q, want %q", i, line.Text, want)
		}
		if line.Stderr {
			t.Errorf("line %d unexpectedly marked stderr", i)
		}
	}
}

func TestStderrDrainedAfterStdout(t *testing.T) {
	skipOnWindows(t)

	p, err := Start([]string{"sh", "-c", "echo err1 >&2; echo out1; echo out2; echo err2 >&2"})
	if err != nil {
		t.Fatal(err)
	}

	lines := collect(t, p)
	var out, errs []string
	for _, line := range lines {
		if line.Stderr {
			errs = append(errs, line.Text)
		} else {
			out = append(out, line.Text)
		}
	}
	if strings.Join(out, ",") != "out1,out2" {
		t.Errorf("stdout lines = %v", out)
	}
	if len(errs) != 2 {
		t.Errorf("stderr lines = %v", errs)
	}
	// Stderr content arrives only after the stdout stream is done.
	if len(lines) > 0 && lines[0].Stderr {
		t.Error("stderr line delivered before stdout drained")
	}
}

func TestSpawnFailureSurfacesAtStart(t *testing.T) {
	_, err := Start([]string{"definitely-not-a-real-binary-kraken"})
	if err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

func TestEmptyCommandRejected(t *testing.T) {
	if _, err := Start(nil); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestExitCodeAbsentWhileRunningThenPresent(t *testing.T) {
	skipOnWindows(t)

	p, err := Start([]string{"sh", "-c", "sleep 0.2; exit 7"})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := p.ExitCode(); ok {
		t.Error("exit code reported while still running")
	}

	collect(t, p)

	code, ok := p.ExitCode()
	if !ok {
		t.Fatal("exit code absent after stream closed")
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
}

func TestStopGracefullyTerminates(t *testing.T) {
	skipOnWindows(t)

	p, err := Start([]string{"sh", "-c", "exec sleep 30"})
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		p.Stop()
	}()

	start := time.Now()
	collect(t, p)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("stream did not end promptly after Stop: %s", elapsed)
	}
}

func TestStopEscalatesToKill(t *testing.T) {
	skipOnWindows(t)

	// The child ignores SIGTERM, so Stop must escalate to SIGKILL after
	// the grace period.
	// The sleep child gets /dev/null so the output pipes close as soon as
	// the shell itself dies.
	p, err := Start([]string{"sh", "-c", `trap "" TERM; sleep 30 >/dev/null 2>&1`})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		collect(t, p)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	start := time.Now()
	p.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream still open 5s after Stop")
	}
	if elapsed := time.Since(start); elapsed < gracePeriod {
		t.Errorf("Stop returned before the grace period elapsed: %s", elapsed)
	}
}

func TestStopAfterExitIsNoOp(t *testing.T) {
	skipOnWindows(t)

	p, err := Start([]string{"sh", "-c", "echo done"})
	if err != nil {
		t.Fatal(err)
	}
	collect(t, p)

	// Process already exited; Stop must not error or block.
	p.Stop()
}

func TestLongLinesAccepted(t *testing.T) {
	skipOnWindows(t)

	// 1MB single line, well past bufio's 64KB default.
	p, err := Start([]string{"sh", "-c", `head -c 1048576 /dev/zero | tr '\0' 'a'; echo`})
	if err != nil {
		t.Fatal(err)
	}

	lines := collect(t, p)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if len(lines[0].Text) != 1048576 {
		t.Errorf("line length = %d, want 1048576", len(lines[0].Text))
	}
}

func TestInvalidUTF8Replaced(t *testing.T) {
	skipOnWindows(t)

	p, err := Start([]string{"sh", "-c", `printf 'ok\377\376bad\n'`})
	if err != nil {
		t.Fatal(err)
	}

	lines := collect(t, p)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !strings.Contains(lines[0].Text, "�") {
		t.Errorf("invalid bytes not substituted: %q", lines[0].Text)
	}
	if !strings.HasPrefix(lines[0].Text, "ok") || !strings.HasSuffix(lines[0].Text, "bad") {
		t.Errorf("surrounding valid bytes damaged: %q", lines[0].Text)
	}
}
