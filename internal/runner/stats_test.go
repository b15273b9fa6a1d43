package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aardwolf-security/krakenbuster/internal/scanner"
)

func TestComputePercentClamps(t *testing.T) {
	assert.Equal(t, float64(-1), computePercent(10, 0))
	assert.Equal(t, float64(25), computePercent(250, 1000))
	assert.Equal(t, float64(100), computePercent(1000, 1000))
	// Recursing tools emit more lines than the wordlist has entries.
	assert.Equal(t, float64(100), computePercent(1500, 1000))
}

func TestSnapshotRateUsesTrailingWindow(t *testing.T) {
	fake := fakeScanner{tool: scanner.Ffuf, mode: scanner.ModeDirectory}
	s := newTestSession(t, NewTask(Primary, fake, "http://x"))

	now := time.Now()
	// Ten recent samples and ten stale ones; only the recent count.
	for i := 0; i < 10; i++ {
		s.recordSample(now.Add(-20 * time.Second))
	}
	for i := 0; i < 10; i++ {
		s.recordSample(now)
	}

	st := s.snapshot(now.Add(-30 * time.Second))
	assert.InDelta(t, 2.0, st.LinesPerSec, 0.5) // 10 lines over a 5s window
	assert.GreaterOrEqual(t, st.Elapsed, 29*time.Second)
}

func TestSnapshotRingOverwritesOldest(t *testing.T) {
	fake := fakeScanner{tool: scanner.Ffuf, mode: scanner.ModeDirectory}
	s := newTestSession(t, NewTask(Primary, fake, "http://x"))

	// Fill the ring with stale samples, then wrap it with fresh ones.
	stale := time.Now().Add(-time.Hour)
	for i := 0; i < rateSamples; i++ {
		s.recordSample(stale)
	}
	for i := 0; i < rateSamples; i++ {
		s.recordSample(time.Now())
	}

	st := s.snapshot(time.Now().Add(-time.Minute))
	assert.InDelta(t, float64(rateSamples)/rateWindow.Seconds(), st.LinesPerSec, 1.0)
}

func TestSnapshotETA(t *testing.T) {
	fake := fakeScanner{tool: scanner.Ffuf, mode: scanner.ModeDirectory}
	s := newTestSession(t, NewTask(Primary, fake, "http://x"))
	task := s.task(Primary)
	require.NotNil(t, task)
	task.totalWords = 1000
	task.rawLines = 250

	// 250 of 1000 words after 5 seconds: 50 lines/s average, 15s to go.
	st := s.snapshot(time.Now().Add(-5 * time.Second))
	assert.Equal(t, float64(25), st.Percent)
	assert.Equal(t, 250, st.ProgressDone)
	assert.Equal(t, 1000, st.ProgressOf)
	assert.InDelta(t, float64(15*time.Second), float64(st.ETA), float64(time.Second))
}

func TestTogglePauseExcludesPausedTime(t *testing.T) {
	fake := fakeScanner{tool: scanner.Ffuf, mode: scanner.ModeDirectory}
	s := newTestSession(t, NewTask(Primary, fake, "http://x"))

	assert.True(t, s.TogglePause())
	time.Sleep(50 * time.Millisecond)

	st := s.snapshot(time.Now().Add(-time.Second))
	assert.True(t, st.Paused)
	assert.Less(t, st.Elapsed, time.Second)

	assert.False(t, s.TogglePause())
	st = s.snapshot(time.Now().Add(-time.Second))
	assert.False(t, st.Paused)
}

func TestSnapshotWithoutDenominator(t *testing.T) {
	fake := fakeScanner{tool: scanner.Ffuf, mode: scanner.ModeDirectory}
	s := newTestSession(t, NewTask(Primary, fake, "http://x"))
	st := s.snapshot(time.Now())
	assert.Equal(t, float64(-1), st.Percent)
	assert.Equal(t, time.Duration(0), st.ETA)
}
