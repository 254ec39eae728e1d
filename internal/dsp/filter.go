package dsp

import "math"

// OnePole is a single-coefficient smoothing filter usable as lowpass or,
// by subtraction, highpass.
type OnePole struct {
	a  float64
	lp float64
}

func NewOnePole(fc, sampleRate float64) OnePole {
	omega := twoPi * fc / sampleRate
	return OnePole{a: omega / (omega + 1)}
}

func (f *OnePole) Lowpass(x float64) float64 {
	f.lp += f.a * (x - f.lp)
	return f.lp
}

func (f *OnePole) Highpass(x float64) float64 {
	return x - f.Lowpass(x)
}

func (f *OnePole) Reset() {
	f.lp = 0
}

// Bandpass is an RBJ constant-skirt bandpass biquad. Reset must be called
// when a voice retriggers so ringing from the previous hit does not bleed
// into the new one.
type Bandpass struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

func NewBandpass(fc, q, sampleRate float64) Bandpass {
	w0 := twoPi * fc / sampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)
	a0 := 1 + alpha
	return Bandpass{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *Bandpass) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y
	return y
}

func (f *Bandpass) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}
