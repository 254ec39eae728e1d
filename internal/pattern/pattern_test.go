package pattern

import (
	"strings"
	"testing"
)

func TestValidateRejectsDegenerateTiming(t *testing.T) {
	cases := []struct {
		name string
		pat  Pattern
		want string
	}{
		{"zero bpm", Pattern{BPM: 0, LoopBeats: 4}, "bpm"},
		{"negative bpm", Pattern{BPM: -120, LoopBeats: 4}, "bpm"},
		{"zero loop", Pattern{BPM: 120, LoopBeats: 0}, "loop length"},
		{"negative beat", Pattern{BPM: 120, LoopBeats: 4,
			Triggers: []Trigger{{Beat: -1, Instrument: Kick, Velocity: 1}}}, "negative beat"},
		{"beat past loop", Pattern{BPM: 120, LoopBeats: 4,
			Triggers: []Trigger{{Beat: 4, Instrument: Kick, Velocity: 1}}}, "outside"},
		{"velocity above one", Pattern{BPM: 120, LoopBeats: 4,
			Triggers: []Trigger{{Beat: 0, Instrument: Kick, Velocity: 1.5}}}, "velocity"},
		{"unknown instrument", Pattern{BPM: 120, LoopBeats: 4,
			Triggers: []Trigger{{Beat: 0, Instrument: Instrument(9), Velocity: 1}}}, "instrument"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pat.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateAcceptsPresets(t *testing.T) {
	for _, p := range []*Pattern{FourOnFloor(130), SlowPulse(72)} {
		if err := p.Validate(); err != nil {
			t.Fatalf("preset failed validation: %v", err)
		}
	}
}

func TestParserBasicGrid(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	pat, err := p.Parse(`
bpm 130
beats 16
k: x...x...x...x...
s: ....x.......x...
h: x.o.x.o.x.o.x.o.
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if pat.BPM != 130 || pat.LoopBeats != 16 {
		t.Fatalf("header = (%v bpm, %v beats), want (130, 16)", pat.BPM, pat.LoopBeats)
	}

	var kicks, snares, hats, opens int
	for _, tr := range pat.Triggers {
		switch tr.Instrument {
		case Kick:
			kicks++
		case Snare:
			snares++
		case Hat:
			hats++
			if tr.Open {
				opens++
			}
		}
	}
	if kicks != 4 || snares != 2 || hats != 8 || opens != 4 {
		t.Fatalf("counts kick=%d snare=%d hat=%d open=%d, want 4/2/8/4", kicks, snares, hats, opens)
	}
}

func TestParserAccentVelocity(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	pat, err := p.Parse("bpm 120\nbeats 4\nk: X...")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(pat.Triggers) != 1 || pat.Triggers[0].Velocity != 1.0 {
		t.Fatalf("accent trigger = %+v, want velocity 1.0", pat.Triggers)
	}
}

func TestParserRowResolutionIndependentOfOtherRows(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	pat, err := p.Parse("bpm 120\nbeats 4\nk: x...\nh: x.x.x.x.")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	// Hat row has 8 steps over 4 beats: half-beat spacing.
	var hatBeats []float64
	for _, tr := range pat.Triggers {
		if tr.Instrument == Hat {
			hatBeats = append(hatBeats, tr.Beat)
		}
	}
	want := []float64{0, 1, 2, 3}
	if len(hatBeats) != len(want) {
		t.Fatalf("hat triggers = %v, want %v", hatBeats, want)
	}
	for i := range want {
		if hatBeats[i] != want[i] {
			t.Fatalf("hat triggers = %v, want %v", hatBeats, want)
		}
	}
}

func TestParserErrors(t *testing.T) {
	p := NewParser(DefaultParserConfig())
	cases := []struct {
		name, text, want string
	}{
		{"bad mark", "bpm 120\nbeats 4\nk: x.?.", "bad step mark"},
		{"unknown tag", "bpm 120\nbeats 4\nz: x...", "unknown instrument tag"},
		{"row before beats", "bpm 120\nk: x...", "beats must be declared"},
		{"missing colon", "bpm 120\nbeats 4\nkick x...", "expected"},
		{"no bpm", "beats 4\nk: x...", "bpm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(tc.text)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
