package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/quartz"
)

const progressDots = 40

// progressMonitor prints a row of dots as simulated rounds complete. It is
// shared by every table goroutine.
type progressMonitor struct {
	mu          sync.Mutex
	out         io.Writer
	clock       quartz.Clock
	total       int
	completed   int
	dotsPrinted int
	started     time.Time
}

func newProgressMonitor(out io.Writer, clock quartz.Clock, tables, rounds int) *progressMonitor {
	return &progressMonitor{
		out:   out,
		clock: clock,
		total: max(tables*rounds, 1),
	}
}

func (m *progressMonitor) Start(tables, rounds int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = m.clock.Now()
	fmt.Fprintf(m.out, "%d tables x %d rounds: ", tables, rounds)
}

// OnRound matches simulator.Config.Progress
func (m *progressMonitor) OnRound(int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.completed++
	target := min(m.completed*progressDots/m.total, progressDots)
	for ; m.dotsPrinted < target; m.dotsPrinted++ {
		fmt.Fprint(m.out, ".")
	}
}

// Finish ends the row with the throughput
func (m *progressMonitor) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := m.clock.Since(m.started).Seconds()
	if elapsed <= 0 {
		fmt.Fprintf(m.out, " %d rounds\n", m.completed)
		return
	}
	fmt.Fprintf(m.out, " %d rounds in %.1fs (%.0f/sec)\n", m.completed, elapsed, float64(m.completed)/elapsed)
}
