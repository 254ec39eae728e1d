package dsp

import "math"

// ExpEnv is a one-multiply exponential decay envelope. Process returns the
// current value and then decays it, so the first sample after Trigger is the
// full trigger level.
type ExpEnv struct {
	value float64
	decay float64
}

// DecayCoef returns the per-sample multiplier that decays to 1/e over the
// given window in milliseconds.
func DecayCoef(ms, sampleRate float64) float64 {
	return math.Exp(-1 / (ms * 0.001 * sampleRate))
}

func (e *ExpEnv) SetDecay(coef float64) {
	e.decay = coef
}

func (e *ExpEnv) Trigger(level float64) {
	e.value = level
}

func (e *ExpEnv) Process() float64 {
	v := e.value
	e.value *= e.decay
	return v
}

func (e *ExpEnv) Value() float64 {
	return e.value
}
