package ui

import (
	"context"
	"os"

	"golang.org/x/term"
)

// ListenKeys puts stdin into raw mode and invokes onPause whenever the
// user presses 'p' or space. It returns a restore function; callers must
// invoke it before printing the final summary. When stdin is not a
// terminal the listener is a no-op.
func ListenKeys(ctx context.Context, onPause func()) (restore func()) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}
	}

	go func() {
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				return
			}
			switch buf[0] {
			case 'p', 'P', ' ':
				onPause()
			case 3: // ctrl-c passes through as SIGINT equivalent in raw mode
				proc, _ := os.FindProcess(os.Getpid())
				proc.Signal(os.Interrupt)
			}
		}
	}()

	return func() { term.Restore(fd, oldState) }
}
