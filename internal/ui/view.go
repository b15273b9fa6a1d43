package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/aardwolf-security/krakenbuster/internal/classify"
	"github.com/aardwolf-security/krakenbuster/internal/runner"
)

// ConsoleView streams findings and a status line to the terminal. Findings
// always print; informational noise is rate-limited so a chatty tool
// cannot flood the display.
type ConsoleView struct {
	mu      sync.Mutex
	w       io.Writer
	width   int
	quiet   bool
	noise   *rate.Limiter
	twoCols bool // label lines with their scanner when two run at once
}

// NewConsoleView builds a view writing to stdout. Pass quiet to suppress
// non-finding output entirely.
func NewConsoleView(quiet, twoScanners bool) *ConsoleView {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return &ConsoleView{
		w:       os.Stdout,
		width:   width,
		quiet:   quiet,
		noise:   rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		twoCols: twoScanners,
	}
}

func (v *ConsoleView) prefix(id runner.ScannerID) string {
	if !v.twoCols {
		return ""
	}
	return dimStyle.Render("["+string(id)+"] ")
}

// Line prints one scanner output line. Lines carrying a finding are always
// shown and styled by status class; other lines pass through the limiter.
func (v *ConsoleView) Line(id runner.ScannerID, line string, finding *classify.Finding) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if finding != nil {
		fmt.Fprintf(v.w, "\r\x1b[2K%s%s %s\n",
			v.prefix(id),
			statusStyle(finding.Status).Render(fmt.Sprintf("%3d", finding.Status)),
			v.clip(findingText(line, finding)))
		return
	}
	if v.quiet || !v.noise.Allow() {
		return
	}
	fmt.Fprintf(v.w, "\r\x1b[2K%s%s\n", v.prefix(id), dimStyle.Render(v.clip(line)))
}

// Stderr prints a scanner diagnostic line.
func (v *ConsoleView) Stderr(id runner.ScannerID, line string) {
	if v.quiet {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.w, "\r\x1b[2K%s%s\n", v.prefix(id), errStyle.Render(v.clip(line)))
}

// Completed announces that one scanner finished.
func (v *ConsoleView) Completed(id runner.ScannerID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.w, "\r\x1b[2K%s\n", labelStyle.Render(fmt.Sprintf("[%s] scanner complete", id)))
}

// Stats redraws the in-place status line at the bottom of the stream.
func (v *ConsoleView) Stats(s runner.Stats) {
	if v.quiet {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	var b strings.Builder
	if s.Paused {
		b.WriteString("[PAUSED] ")
	}
	fmt.Fprintf(&b, "elapsed %s | %d findings | %.1f lines/s",
		s.Elapsed.Round(time.Second), s.Findings, s.LinesPerSec)
	if s.Percent >= 0 {
		fmt.Fprintf(&b, " | %.1f%% (%d/%d)", s.Percent, s.ProgressDone, s.ProgressOf)
		if s.ETA > 0 {
			fmt.Fprintf(&b, " | ETA %s", s.ETA.Round(time.Second))
		}
	}
	fmt.Fprintf(v.w, "\r\x1b[2K%s", dimStyle.Render(v.clip(b.String())))
}

// Close terminates the status line so the shell prompt lands cleanly.
func (v *ConsoleView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.w, "\r\x1b[2K")
}

// clip truncates on rune boundaries so multi-byte output never gets cut
// mid-sequence.
func (v *ConsoleView) clip(s string) string {
	if v.width <= 4 || len(s) <= v.width-2 {
		return s
	}
	r := []rune(s)
	if len(r) <= v.width-2 {
		return s
	}
	return string(r[:v.width-5]) + "..."
}

// findingText condenses a finding line to its informative fields, falling
// back to the raw line when the URL was not extracted.
func findingText(line string, f *classify.Finding) string {
	if f.URL == "" {
		return strings.TrimSpace(line)
	}
	var b strings.Builder
	b.WriteString(f.URL)
	if f.Size > 0 {
		fmt.Fprintf(&b, "  [%dB]", f.Size)
	}
	if f.Redirect != "" {
		fmt.Fprintf(&b, "  -> %s", f.Redirect)
	}
	return b.String()
}
