package dsp

import "math"

const twoPi = math.Pi * 2

// Osc is a sine oscillator driven by a [0,1) phase accumulator.
// The phase wraps by subtraction rather than math.Mod so precision
// holds up over hour-long sessions.
type Osc struct {
	phase float64
	inc   float64
}

func NewOsc(freq, sampleRate float64) Osc {
	o := Osc{}
	o.SetFreq(freq, sampleRate)
	return o
}

func (o *Osc) SetFreq(freq, sampleRate float64) {
	o.inc = freq / sampleRate
}

// SetPhase positions the accumulator directly, phase in [0,1).
func (o *Osc) SetPhase(phase float64) {
	o.phase = phase
}

// Next returns sin(2π·phase) and advances one sample.
func (o *Osc) Next() float64 {
	v := math.Sin(twoPi * o.phase)
	o.phase += o.inc
	if o.phase >= 1 {
		o.phase -= 1
	}
	return v
}
