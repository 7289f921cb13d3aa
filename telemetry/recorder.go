// Package telemetry records the published simulation state: a bounded
// ring of recent samples for the UI, windowed statistics, regime event
// detection, CSV export and point-in-time state snapshots.
package telemetry

import (
	"sync"

	"github.com/pthm-cable/lotka/sim"
)

// Sample is one published simulation state as recorded for the bounded
// history window.
type Sample struct {
	Step        uint64
	Elapsed     float64 // simulated seconds
	Scenario    sim.Scenario
	Populations sim.Vector
}

// Recorder keeps the most recent samples in a fixed-size ring. The
// sampling goroutine appends while the UI reads, so access is mutex
// protected. History older than the ring is discarded.
type Recorder struct {
	mu    sync.Mutex
	buf   []Sample
	head  int // next write position
	count int
}

// NewRecorder creates a recorder holding up to capacity samples.
func NewRecorder(capacity int) *Recorder {
	if capacity < 1 {
		capacity = 1
	}
	return &Recorder{buf: make([]Sample, capacity)}
}

// Append records one sample, evicting the oldest once the ring is full.
func (r *Recorder) Append(s Sample) {
	r.mu.Lock()
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Len returns the number of recorded samples, capped at capacity.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the ring capacity.
func (r *Recorder) Cap() int {
	return len(r.buf)
}

// Recent returns the recorded samples oldest first.
func (r *Recorder) Recent() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, r.count)
	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Series returns the abundance history of one species, oldest first. The
// population chart consumes this directly.
func (r *Recorder) Series(s sim.Species) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, r.count)
	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)].Populations[s]
	}
	return out
}

// Latest returns the most recent sample, if any.
func (r *Recorder) Latest() (Sample, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == 0 {
		return Sample{}, false
	}
	idx := r.head - 1
	if idx < 0 {
		idx += len(r.buf)
	}
	return r.buf[idx], true
}
