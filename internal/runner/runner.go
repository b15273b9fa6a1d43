// Package runner coordinates one scan session: it spawns the configured
// scanners, merges their output into a single ordered stream, classifies
// lines into findings, and persists raw and structured results.
package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aardwolf-security/krakenbuster/internal/classify"
	"github.com/aardwolf-security/krakenbuster/internal/hook"
	"github.com/aardwolf-security/krakenbuster/internal/output"
	"github.com/aardwolf-security/krakenbuster/internal/proc"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
	"github.com/aardwolf-security/krakenbuster/internal/wordlist"
)

// ScannerID distinguishes the concurrent scanners of one session.
type ScannerID string

const (
	Primary   ScannerID = "primary"
	Secondary ScannerID = "secondary"
)

// event is one message on the merge channel. Exactly one of Line or Done
// is meaningful per message; every task sends Done exactly once, last.
type event struct {
	scanner ScannerID
	line    proc.Line
	done    bool
	err     error
}

// Task pairs a scanner with its session-scoped bookkeeping.
type Task struct {
	ID      ScannerID
	Scanner scanner.Scanner
	Target  string

	rawPath  string
	jsonPath string

	totalWords int
	rawLines   int
	errLines   int
	raw        []string
	findings   []classify.Finding
	errors     []string
	started    time.Time
	finished   time.Time
}

// Result is the per-scanner outcome surfaced after a session completes.
type Result struct {
	Scanner    ScannerID
	Tool       string
	Mode       string
	Target     string
	Wordlist   string
	TotalWords int
	Duration   time.Duration
	Findings   []classify.Finding
	RawOutput  []string
	RawLines   int
	ErrLines   int
	Errors     []string
	RawPath    string
	JSONPath   string
}

// Totals is the session-wide aggregate over all scanners.
type Totals struct {
	Findings int
	RawLines int
	ErrLines int
	Duration time.Duration
}

// Total merges per-scanner results into one aggregate; Duration is the
// longest individual scanner duration since they run concurrently.
func Total(results []Result) Totals {
	var t Totals
	for _, r := range results {
		t.Findings += len(r.Findings)
		t.RawLines += r.RawLines
		t.ErrLines += r.ErrLines
		if r.Duration > t.Duration {
			t.Duration = r.Duration
		}
	}
	return t
}

// Stats is a point-in-time snapshot of session progress, published on a
// fixed cadence while the session runs. Elapsed excludes paused time.
type Stats struct {
	Elapsed      time.Duration
	Findings     int
	LinesPerSec  float64
	Percent      float64 // -1 when no denominator is known
	ETA          time.Duration
	ProgressDone int
	ProgressOf   int
	Errors       int
	Paused       bool
}

// View receives live session events. Implementations must not block; the
// coordinator calls them from its merge loop.
type View interface {
	Line(id ScannerID, line string, finding *classify.Finding)
	Stderr(id ScannerID, line string)
	Completed(id ScannerID)
	Stats(s Stats)
}

// NopView discards all events. Useful for tests and quiet mode.
type NopView struct{}

func (NopView) Line(ScannerID, string, *classify.Finding) {}
func (NopView) Stderr(ScannerID, string)                  {}
func (NopView) Completed(ScannerID)                       {}
func (NopView) Stats(Stats)                               {}

// rateSamples bounds the throughput ring buffer.
const rateSamples = 50

// rateWindow is how far back line timestamps count toward the rate.
const rateWindow = 5 * time.Second

// statsCadence is how often a Stats snapshot is published.
const statsCadence = time.Second

// Session owns one scan run from spawn to persisted results.
type Session struct {
	ID        uuid.UUID
	OutputDir string
	Wordlist  string
	Hook      *hook.Runner // optional per-finding hook, nil when unset

	tasks []*Task

	mu        sync.Mutex
	samples   []time.Time // primary-scanner line timestamps, ring of rateSamples
	sampleIdx int
	sampleLen int

	procs       []*proc.Process
	paused      bool
	pausedSince time.Time
	totalPaused time.Duration
}

// NewSession prepares a session over one or two scanners. The first task
// is the primary: its wordlist seeds the progress denominator and its
// line timestamps drive the throughput estimate.
func NewSession(outputDir, wl string, tasks ...*Task) (*Session, error) {
	if len(tasks) == 0 || len(tasks) > 2 {
		return nil, fmt.Errorf("session requires one or two scanners, got %d", len(tasks))
	}
	return &Session{
		ID:        uuid.New(),
		OutputDir: outputDir,
		Wordlist:  wl,
		samples:   make([]time.Time, rateSamples),
		tasks:     tasks,
	}, nil
}

// NewTask builds a session task for one scanner.
func NewTask(id ScannerID, s scanner.Scanner, target string) *Task {
	return &Task{ID: id, Scanner: s, Target: target}
}

// Run executes the session to completion. Cancelling ctx stops the child
// processes and still persists whatever was collected; partial results
// are results.
func (s *Session) Run(ctx context.Context, view View) ([]Result, error) {
	if err := s.initialize(); err != nil {
		return nil, err
	}

	events := make(chan event)
	var wg sync.WaitGroup
	started := time.Now()

	for _, task := range s.tasks {
		task.started = started
		argv := task.Scanner.Command()
		log.WithFields(log.Fields{
			"session": s.ID,
			"scanner": task.ID,
			"command": strings.Join(argv, " "),
		}).Info("starting scanner")

		p, err := proc.Start(argv)
		if err != nil {
			// Spawn failure is terminal for this scanner only; the
			// sibling keeps running.
			task.errLines++
			task.errors = append(task.errors, err.Error())
			task.finished = time.Now()
			view.Stderr(task.ID, err.Error())
			view.Completed(task.ID)
			continue
		}
		s.mu.Lock()
		s.procs = append(s.procs, p)
		s.mu.Unlock()

		wg.Add(1)
		go func(id ScannerID, p *proc.Process) {
			defer wg.Done()
			for line := range p.Lines() {
				events <- event{scanner: id, line: line}
			}
			var err error
			if code, ok := p.ExitCode(); ok && code != 0 {
				err = fmt.Errorf("scanner exited with status %d", code)
			}
			events <- event{scanner: id, done: true, err: err}
		}(task.ID, p)
	}

	go func() {
		wg.Wait()
		close(events)
	}()

	stopOnce := sync.Once{}
	stopAll := func() {
		stopOnce.Do(func() {
			s.mu.Lock()
			procs := append([]*proc.Process(nil), s.procs...)
			s.mu.Unlock()
			for _, p := range procs {
				p.Resume() // a paused child cannot handle SIGTERM
				p.Stop()
			}
		})
	}

	ticker := time.NewTicker(statsCadence)
	defer ticker.Stop()

	running := true
	for running {
		select {
		case <-ctx.Done():
			log.WithField("session", s.ID).Info("scan cancelled, stopping scanners")
			// Stop concurrently with the drain: Stop waits for each pump
			// to finish, and a pump blocked on a full line channel can
			// only finish if events keeps being consumed here.
			go stopAll()
			// Drain until every pump closes so no line is lost.
			for ev := range events {
				s.handle(ev, started, view)
			}
			running = false
		case ev, ok := <-events:
			if !ok {
				running = false
				break
			}
			s.handle(ev, started, view)
		case <-ticker.C:
			view.Stats(s.snapshot(started))
		}
	}

	view.Stats(s.snapshot(started))
	return s.finalize()
}

// initialize resolves output paths and the progress denominator before
// any process is spawned.
func (s *Session) initialize() error {
	total := 0
	if s.Wordlist != "" {
		n, err := wordlist.CountLines(s.Wordlist)
		if err != nil {
			log.WithError(err).Warn("could not size wordlist, progress will be indeterminate")
		} else {
			total = n
		}
	}

	for _, task := range s.tasks {
		raw, jsonPath, err := output.Paths(
			s.OutputDir, task.Target,
			task.Scanner.Tool().String(), task.Scanner.Mode().String())
		if err != nil {
			return err
		}
		task.rawPath = raw
		task.jsonPath = jsonPath
		task.totalWords = total
	}
	return nil
}

func (s *Session) handle(ev event, started time.Time, view View) {
	task := s.task(ev.scanner)
	if task == nil {
		return
	}

	if ev.done {
		task.finished = time.Now()
		if ev.err != nil {
			task.errors = append(task.errors, ev.err.Error())
		}
		log.WithFields(log.Fields{
			"session":  s.ID,
			"scanner":  ev.scanner,
			"lines":    task.rawLines,
			"findings": len(task.findings),
		}).Info("scanner finished")
		view.Completed(ev.scanner)
		return
	}

	text := strings.TrimRight(ev.line.Text, "\r\n")
	if text == "" {
		return
	}

	if ev.line.Stderr {
		task.errLines++
		task.errors = append(task.errors, text)
		view.Stderr(ev.scanner, text)
		return
	}

	task.rawLines++
	task.raw = append(task.raw, text)
	if ev.scanner == Primary {
		s.recordSample(time.Now())
	}

	if err := output.AppendRaw(task.rawPath, text); err != nil {
		log.WithError(err).WithField("path", task.rawPath).Warn("raw log append failed")
	}

	finding, ok := classify.ParseFinding(text)
	if ok {
		task.findings = append(task.findings, finding)
		view.Line(ev.scanner, text, &finding)
		if s.Hook != nil {
			go s.Hook.Run(finding)
		}
	} else {
		view.Line(ev.scanner, text, nil)
	}
}

// TogglePause suspends or resumes every child process and returns the new
// paused state. Paused time is excluded from Elapsed and the throughput
// window.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		s.totalPaused += time.Since(s.pausedSince)
		s.paused = false
		for _, p := range s.procs {
			p.Resume()
		}
	} else {
		s.paused = true
		s.pausedSince = time.Now()
		for _, p := range s.procs {
			p.Pause()
		}
	}
	return s.paused
}

func (s *Session) task(id ScannerID) *Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Session) recordSample(t time.Time) {
	s.mu.Lock()
	s.samples[s.sampleIdx] = t
	s.sampleIdx = (s.sampleIdx + 1) % rateSamples
	if s.sampleLen < rateSamples {
		s.sampleLen++
	}
	s.mu.Unlock()
}

// snapshot derives the current Stats from accumulated state. It is the
// only reader of the sample ring outside recordSample.
func (s *Session) snapshot(started time.Time) Stats {
	now := time.Now()

	s.mu.Lock()
	recent := 0
	for i := 0; i < s.sampleLen; i++ {
		if now.Sub(s.samples[i]) <= rateWindow {
			recent++
		}
	}
	paused := s.paused
	pausedTotal := s.totalPaused
	if paused {
		pausedTotal += now.Sub(s.pausedSince)
	}
	s.mu.Unlock()

	findings := 0
	errs := 0
	done := 0
	total := 0
	for _, t := range s.tasks {
		findings += len(t.findings)
		errs += len(t.errors)
	}
	if primary := s.task(Primary); primary != nil {
		done = primary.rawLines
		total = primary.totalWords
	}

	st := Stats{
		Elapsed:      now.Sub(started) - pausedTotal,
		Paused:       paused,
		Findings:     findings,
		Errors:       errs,
		LinesPerSec:  float64(recent) / rateWindow.Seconds(),
		Percent:      -1,
		ProgressDone: done,
		ProgressOf:   total,
	}
	if total > 0 {
		st.Percent = computePercent(done, total)
		// ETA projects from the average rate since start, not the
		// trailing window, so a momentary stall does not blow it up.
		if done > 0 && done < total && st.Elapsed > 0 {
			avg := float64(done) / st.Elapsed.Seconds()
			st.ETA = time.Duration(float64(total-done) / avg * float64(time.Second))
		}
	}
	return st
}

// computePercent clamps progress to [0,100]; tools that emit more lines
// than the wordlist has entries (recursion, banners) must not overflow.
func computePercent(done, total int) float64 {
	if total <= 0 {
		return -1
	}
	pct := float64(done) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// finalize persists structured findings for every task and assembles the
// per-scanner results. A findings write failure is reported but does not
// discard the sibling's results.
func (s *Session) finalize() ([]Result, error) {
	var firstErr error
	results := make([]Result, 0, len(s.tasks))

	for _, task := range s.tasks {
		if err := output.WriteFindings(task.jsonPath, task.findings); err != nil {
			log.WithError(err).WithField("scanner", task.ID).Error("persisting findings failed")
			task.errors = append(task.errors, err.Error())
			if firstErr == nil {
				firstErr = err
			}
		}

		finished := task.finished
		if finished.IsZero() {
			finished = time.Now()
		}
		results = append(results, Result{
			Scanner:    task.ID,
			Tool:       task.Scanner.Tool().String(),
			Mode:       task.Scanner.Mode().String(),
			Target:     task.Target,
			Wordlist:   s.Wordlist,
			TotalWords: task.totalWords,
			Duration:   finished.Sub(task.started),
			Findings:   task.findings,
			RawOutput:  task.raw,
			RawLines:   task.rawLines,
			ErrLines:   task.errLines,
			Errors:     task.errors,
			RawPath:    task.rawPath,
			JSONPath:   task.jsonPath,
		})
	}
	return results, firstErr
}
