package sim

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot is the immutable state published after every sampling step.
// Each publish stores a fresh value behind an atomic pointer, so a reader
// on another goroutine observes either the previous or the new snapshot in
// full, never a partial write.
type Snapshot struct {
	Populations Vector
	Scenario    Scenario
	Step        uint64
	Elapsed     float64 // simulated seconds
}

// Runner drives an Engine from a wall-clock ticker and publishes a fresh
// Snapshot after every step. Renderers read Snapshot at their own cadence;
// the sampling and render rates are deliberately decoupled, like a display
// instrument polling a continuously evolving process.
type Runner struct {
	mu     sync.Mutex
	engine *Engine
	paused bool

	interval time.Duration
	stopCh   chan struct{}
	running  bool

	snap      atomic.Pointer[Snapshot]
	onPublish func(Snapshot)
}

// NewRunner wraps engine with a sampling interval. The initial engine state
// is published immediately, so Snapshot is valid before the first tick.
func NewRunner(engine *Engine, interval time.Duration) *Runner {
	r := &Runner{engine: engine, interval: interval}
	r.mu.Lock()
	r.publish()
	r.mu.Unlock()
	return r
}

// SetOnPublish installs a hook invoked with every published snapshot from
// Tick. The hook runs outside the runner lock on the sampling goroutine, so
// it must not block for long.
func (r *Runner) SetOnPublish(fn func(Snapshot)) {
	r.mu.Lock()
	r.onPublish = fn
	r.mu.Unlock()
}

// publish stores the current engine state as a new snapshot.
// Callers must hold mu.
func (r *Runner) publish() Snapshot {
	s := Snapshot{
		Populations: r.engine.Populations(),
		Scenario:    r.engine.Scenario(),
		Step:        r.engine.Steps(),
		Elapsed:     r.engine.Elapsed(),
	}
	r.snap.Store(&s)
	return s
}

// Tick advances the engine one step and publishes the result. Headless runs
// and tests call it directly; Run calls it from the ticker goroutine.
func (r *Runner) Tick() {
	r.mu.Lock()
	if r.paused {
		r.mu.Unlock()
		return
	}
	r.engine.Advance()
	s := r.publish()
	cb := r.onPublish
	r.mu.Unlock()

	if cb != nil {
		cb(s)
	}
}

// Run starts the sampling loop in its own goroutine. Calling Run on an
// already-running Runner is a no-op.
func (r *Runner) Run() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stop := r.stopCh
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Tick()
			case <-stop:
				return
			}
		}
	}()

	slog.Info("sampler started", "interval", r.interval.String())
}

// Stop halts the sampling loop. Safe to call on a stopped Runner.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	slog.Info("sampler stopped")
}

// Snapshot returns the most recently published state. Lock-free.
func (r *Runner) Snapshot() Snapshot {
	return *r.snap.Load()
}

// Apply switches the active scenario and republishes immediately so readers
// see the new tag without waiting for the next tick. Populations are not
// reset; the new rates act on the current trajectory.
func (r *Runner) Apply(s Scenario) error {
	r.mu.Lock()
	if err := r.engine.ApplyScenario(s); err != nil {
		r.mu.Unlock()
		return err
	}
	snap := r.publish()
	r.mu.Unlock()

	slog.Info("scenario applied", "scenario", s.String(), "step", snap.Step)
	return nil
}

// Restore replaces the engine state from a saved snapshot and republishes.
func (r *Runner) Restore(populations Vector, step uint64, s Scenario) error {
	r.mu.Lock()
	if err := r.engine.Restore(populations, step, s); err != nil {
		r.mu.Unlock()
		return err
	}
	snap := r.publish()
	r.mu.Unlock()

	slog.Info("state restored", "scenario", s.String(), "step", snap.Step)
	return nil
}

// Parameters returns a copy of the engine's active parameters.
func (r *Runner) Parameters() Parameters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Parameters()
}

// SetPaused suspends or resumes stepping. The ticker keeps firing while
// paused; ticks simply do nothing, so resume is immediate.
func (r *Runner) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.mu.Unlock()
}

// Paused reports whether stepping is suspended.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}
