package pattern

// Built-in loops. These are static data; callers get a fresh copy each time
// so nothing downstream can alias the tables.

// FourOnFloor is a 16-beat house loop: kick on every quarter, snare on 2
// and 4, closed hats on eighths with open hats on the off-quarters.
func FourOnFloor(bpm float64) *Pattern {
	p := &Pattern{BPM: bpm, LoopBeats: 16}
	for beat := 0.0; beat < 16; beat += 4 {
		p.Triggers = append(p.Triggers, Trigger{Beat: beat, Instrument: Kick, Velocity: 1.0})
	}
	for beat := 4.0; beat < 16; beat += 8 {
		p.Triggers = append(p.Triggers, Trigger{Beat: beat, Instrument: Snare, Velocity: 0.9})
	}
	for beat := 0.0; beat < 16; beat += 2 {
		open := int(beat)%4 == 2
		p.Triggers = append(p.Triggers, Trigger{Beat: beat, Instrument: Hat, Velocity: 0.6, Open: open})
	}
	return p
}

// SlowPulse is a sparse 8-beat loop used for low-intensity sessions: kick
// on 1 and 5, a crash opening the loop, hats on quarters.
func SlowPulse(bpm float64) *Pattern {
	p := &Pattern{BPM: bpm, LoopBeats: 8}
	p.Triggers = append(p.Triggers,
		Trigger{Beat: 0, Instrument: Crash, Velocity: 0.7},
		Trigger{Beat: 0, Instrument: Kick, Velocity: 0.9},
		Trigger{Beat: 4, Instrument: Kick, Velocity: 0.8},
	)
	for beat := 0.0; beat < 8; beat++ {
		p.Triggers = append(p.Triggers, Trigger{Beat: beat, Instrument: Hat, Velocity: 0.5})
	}
	return p
}
