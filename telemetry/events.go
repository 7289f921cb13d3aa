package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/lotka/sim"
)

// EventKind labels a detected population event.
type EventKind string

const (
	// EventFloorContact fires when a species first reaches the abundance floor.
	EventFloorContact EventKind = "floor_contact"
	// EventRecovery fires when a species that sat at the floor climbs back
	// above twice the floor.
	EventRecovery EventKind = "recovery"
	// EventOvershoot fires when a species exceeds the overshoot threshold.
	EventOvershoot EventKind = "overshoot"
)

// Event is one detected population event.
type Event struct {
	Step      uint64  `csv:"step"`
	Kind      string  `csv:"kind"`
	Species   string  `csv:"species"`
	Abundance float64 `csv:"abundance"`
	Scenario  string  `csv:"scenario"`
}

// LogEvent emits the event via slog.
func (e Event) LogEvent() {
	slog.Info("population event",
		"step", e.Step,
		"kind", e.Kind,
		"species", e.Species,
		"abundance", e.Abundance,
		"scenario", e.Scenario,
	)
}

// EventDetector watches published samples for floor contacts, recoveries
// and overshoots. Each condition fires once and re-arms only after the
// species leaves the triggering band, so a species parked at the floor
// produces one event rather than one per tick.
type EventDetector struct {
	floor     float64
	overshoot float64

	atFloor  [sim.NumSpecies]bool
	overshot [sim.NumSpecies]bool
}

// NewEventDetector creates a detector. overshoot is the abundance above
// which an overshoot event fires; pass 0 to disable overshoot detection.
func NewEventDetector(floor, overshoot float64) *EventDetector {
	return &EventDetector{floor: floor, overshoot: overshoot}
}

// Check inspects one sample and returns any newly fired events.
func (d *EventDetector) Check(s Sample) []Event {
	var events []Event

	for _, sp := range sim.AllSpecies() {
		n := s.Populations[sp]

		if n <= d.floor+floorEps {
			if !d.atFloor[sp] {
				d.atFloor[sp] = true
				events = append(events, Event{
					Step:      s.Step,
					Kind:      string(EventFloorContact),
					Species:   sp.String(),
					Abundance: n,
					Scenario:  s.Scenario.String(),
				})
			}
		} else if d.atFloor[sp] && n >= 2*d.floor {
			d.atFloor[sp] = false
			events = append(events, Event{
				Step:      s.Step,
				Kind:      string(EventRecovery),
				Species:   sp.String(),
				Abundance: n,
				Scenario:  s.Scenario.String(),
			})
		}

		if d.overshoot <= 0 {
			continue
		}
		if n >= d.overshoot {
			if !d.overshot[sp] {
				d.overshot[sp] = true
				events = append(events, Event{
					Step:      s.Step,
					Kind:      string(EventOvershoot),
					Species:   sp.String(),
					Abundance: n,
					Scenario:  s.Scenario.String(),
				})
			}
		} else if n < 0.8*d.overshoot {
			// Hysteresis: re-arm only after dropping well below the threshold.
			d.overshot[sp] = false
		}
	}

	return events
}
