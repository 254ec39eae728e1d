package lfo

import "math"

// Waveform constants.
const (
	WaveSine = iota
	WaveTriangle
)

// LFO is a low-frequency oscillator producing per-sample modulation in
// [-depth, +depth]. One LFO is typically shared by a cluster of voices.
type LFO struct {
	depth    float64
	rateHz   float64
	waveform int
	phase    float64 // [0, 1)
}

// Set configures the LFO parameters.
func (l *LFO) Set(depth, rateHz float64, waveform int) {
	l.depth = depth
	l.rateHz = rateHz
	if waveform != WaveSine && waveform != WaveTriangle {
		waveform = WaveSine
	}
	l.waveform = waveform
}

// SetPhase positions the oscillator, phase in [0, 1). Clusters offset their
// LFO phases so they do not pulse in lockstep.
func (l *LFO) SetPhase(phase float64) {
	l.phase = phase - math.Floor(phase)
}

// Sample advances the LFO by one sample. Returns 0 when depth or rate is 0.
func (l *LFO) Sample(sampleRate float64) float64 {
	if l.depth == 0 || l.rateHz == 0 || sampleRate == 0 {
		return 0
	}

	var waveVal float64
	switch l.waveform {
	case WaveTriangle:
		if l.phase < 0.5 {
			waveVal = 4.0*l.phase - 1.0
		} else {
			waveVal = 3.0 - 4.0*l.phase
		}
	default: // WaveSine
		waveVal = math.Sin(2 * math.Pi * l.phase)
	}

	l.phase += l.rateHz / sampleRate
	for l.phase >= 1.0 {
		l.phase -= 1.0
	}

	return waveVal * l.depth
}

// Unipolar advances the LFO and maps the output to [0, depth]. Amplitude
// gates use this so modulation never inverts the signal.
func (l *LFO) Unipolar(sampleRate float64) float64 {
	if l.depth == 0 {
		return 0
	}
	return (l.Sample(sampleRate)/l.depth + 1) * 0.5 * l.depth
}

// Active returns true if the LFO has non-zero depth and rate.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

// Reset zeros the LFO phase.
func (l *LFO) Reset() {
	l.phase = 0
}
