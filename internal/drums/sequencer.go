package drums

import (
	"math"
	"sort"

	"github.com/ambitone/ambitone-go/internal/pattern"
)

// sampleTrigger is a pattern trigger resolved to an absolute offset within
// the loop. The list is computed once at construction and read-only after.
type sampleTrigger struct {
	offset     int
	instrument pattern.Instrument
	velocity   float64
	open       bool
}

// Sequencer walks a precomputed trigger list one sample at a time and fires
// every trigger whose offset matches the current loop position. Triggers
// sharing an offset all fire in the same sample.
type Sequencer struct {
	loopSamples int
	triggers    []sampleTrigger
	counter     int
	next        int
}

// NewSequencer resolves a validated pattern against the session sample
// rate. Offsets use round(beat · 60/bpm · sampleRate) so the computation is
// reproducible for identical inputs.
func NewSequencer(pat *pattern.Pattern, sampleRate int) (*Sequencer, error) {
	if err := pat.Validate(); err != nil {
		return nil, err
	}
	secondsPerBeat := 60 / pat.BPM
	s := &Sequencer{
		loopSamples: int(math.Round(pat.LoopBeats * secondsPerBeat * float64(sampleRate))),
		triggers:    make([]sampleTrigger, 0, len(pat.Triggers)),
	}
	for _, tr := range pat.Triggers {
		offset := int(math.Round(tr.Beat * secondsPerBeat * float64(sampleRate)))
		if offset >= s.loopSamples {
			// Rounding can push a trigger at the very end of the loop onto
			// the wrap boundary; keep it inside so it still fires.
			offset = s.loopSamples - 1
		}
		s.triggers = append(s.triggers, sampleTrigger{
			offset:     offset,
			instrument: tr.Instrument,
			velocity:   tr.Velocity,
			open:       tr.Open,
		})
	}
	sort.SliceStable(s.triggers, func(i, j int) bool {
		return s.triggers[i].offset < s.triggers[j].offset
	})
	return s, nil
}

// LoopSamples reports the loop length in samples.
func (s *Sequencer) LoopSamples() int { return s.loopSamples }

// Advance moves one sample forward, calling fire for every trigger due at
// the current loop position.
func (s *Sequencer) Advance(fire func(instrument pattern.Instrument, velocity float64, open bool)) {
	pos := s.counter % s.loopSamples
	if pos == 0 {
		s.next = 0
	}
	for s.next < len(s.triggers) && s.triggers[s.next].offset == pos {
		tr := &s.triggers[s.next]
		fire(tr.instrument, tr.velocity, tr.open)
		s.next++
	}
	s.counter++
}
