package sim

import (
	"testing"
	"time"
)

func TestRunnerTickPublishes(t *testing.T) {
	e := NewEngine(DefaultParameters())
	r := NewRunner(e, time.Hour) // interval irrelevant for manual ticks

	initial := r.Snapshot()
	if initial.Step != 0 || initial.Populations != (Vector{1, 1, 1}) {
		t.Fatalf("initial snapshot = %+v", initial)
	}

	want := Step(Vector{1, 1, 1}, DefaultParameters())
	r.Tick()

	got := r.Snapshot()
	if got.Step != 1 {
		t.Errorf("step = %d, want 1", got.Step)
	}
	if got.Populations != want {
		t.Errorf("populations = %v, want %v", got.Populations, want)
	}
}

func TestRunnerSnapshotIsACopy(t *testing.T) {
	r := NewRunner(NewEngine(DefaultParameters()), time.Hour)

	s := r.Snapshot()
	s.Populations[0] = 99

	if got := r.Snapshot().Populations[0]; got == 99 {
		t.Error("mutating a returned snapshot leaked into shared state")
	}
}

func TestRunnerApplyRepublishes(t *testing.T) {
	r := NewRunner(NewEngine(DefaultParameters()), time.Hour)

	if err := r.Apply(ScenarioCollapse); err != nil {
		t.Fatalf("apply: %v", err)
	}
	snap := r.Snapshot()
	if snap.Scenario != ScenarioCollapse {
		t.Errorf("scenario = %v, want collapse", snap.Scenario)
	}
	if snap.Step != 0 {
		t.Errorf("apply must not advance the simulation, step = %d", snap.Step)
	}

	if err := r.Apply(Scenario(42)); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestRunnerPublishHook(t *testing.T) {
	r := NewRunner(NewEngine(DefaultParameters()), time.Hour)

	var steps []uint64
	r.SetOnPublish(func(s Snapshot) { steps = append(steps, s.Step) })

	r.Tick()
	r.Tick()
	r.Tick()

	if len(steps) != 3 {
		t.Fatalf("hook ran %d times, want 3", len(steps))
	}
	for i, s := range steps {
		if s != uint64(i+1) {
			t.Errorf("hook call %d saw step %d, want %d", i, s, i+1)
		}
	}
}

func TestRunnerPause(t *testing.T) {
	r := NewRunner(NewEngine(DefaultParameters()), time.Hour)

	r.SetPaused(true)
	r.Tick()
	if got := r.Snapshot().Step; got != 0 {
		t.Errorf("paused tick advanced to step %d", got)
	}

	r.SetPaused(false)
	r.Tick()
	if got := r.Snapshot().Step; got != 1 {
		t.Errorf("step = %d after resume, want 1", got)
	}
}

func TestRunnerRunAndStop(t *testing.T) {
	r := NewRunner(NewEngine(DefaultParameters()), time.Millisecond)

	r.Run()
	deadline := time.After(2 * time.Second)
	for r.Snapshot().Step < 3 {
		select {
		case <-deadline:
			t.Fatal("sampler never reached step 3")
		case <-time.After(time.Millisecond):
		}
	}
	r.Stop()
	r.Stop() // idempotent

	time.Sleep(20 * time.Millisecond)
	after := r.Snapshot().Step
	time.Sleep(50 * time.Millisecond)
	if got := r.Snapshot().Step; got != after {
		t.Errorf("sampler still running after Stop: step %d -> %d", after, got)
	}
}
