// Package pattern models the beat-relative drum loop description the engine
// consumes. Patterns are plain data: the sequencer converts them to sample
// offsets once at session start and never mutates them.
package pattern

import "fmt"

// Instrument tags a trigger with the voice pool it fires into.
type Instrument int

const (
	Kick Instrument = iota
	Snare
	Hat
	Crash
	instrumentCount
)

func (i Instrument) String() string {
	switch i {
	case Kick:
		return "kick"
	case Snare:
		return "snare"
	case Hat:
		return "hat"
	case Crash:
		return "crash"
	default:
		return fmt.Sprintf("instrument(%d)", int(i))
	}
}

// Trigger is one beat-relative hit. Open selects the open-hat decay preset
// and is ignored by other instruments.
type Trigger struct {
	Beat       float64
	Instrument Instrument
	Velocity   float64
	Open       bool
}

// Pattern is an immutable loop description.
type Pattern struct {
	BPM       float64
	LoopBeats float64
	Triggers  []Trigger
}

// Validate rejects degenerate timing before any coefficient is derived from
// it. A pattern that fails here must not reach the sequencer.
func (p *Pattern) Validate() error {
	if p.BPM <= 0 {
		return fmt.Errorf("pattern: bpm must be positive, got %v", p.BPM)
	}
	if p.LoopBeats <= 0 {
		return fmt.Errorf("pattern: loop length must be positive, got %v beats", p.LoopBeats)
	}
	for i, tr := range p.Triggers {
		if tr.Beat < 0 {
			return fmt.Errorf("pattern: trigger %d at negative beat %v", i, tr.Beat)
		}
		if tr.Beat >= p.LoopBeats {
			return fmt.Errorf("pattern: trigger %d at beat %v outside %v-beat loop", i, tr.Beat, p.LoopBeats)
		}
		if tr.Velocity < 0 || tr.Velocity > 1 {
			return fmt.Errorf("pattern: trigger %d velocity %v outside [0,1]", i, tr.Velocity)
		}
		if tr.Instrument < 0 || tr.Instrument >= instrumentCount {
			return fmt.Errorf("pattern: trigger %d has unknown instrument %d", i, int(tr.Instrument))
		}
	}
	return nil
}
