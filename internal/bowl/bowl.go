// Package bowl renders a resonant singing-bowl texture by additive
// modal synthesis. Oscillators sit in clusters around each mode; a
// cluster shares one slow amplitude LFO, and every oscillator carries
// its own micro frequency drift so the texture never freezes.
package bowl

import (
	"math"

	"github.com/ambitone/ambitone-go/internal/dsp"
	"github.com/ambitone/ambitone-go/internal/lfo"
)

type Mode struct {
	FreqHz float64
	Level  float64
	// Spread offsets the cluster's side oscillators, in Hz.
	Spread float64
	// Shimmer is the cluster amplitude LFO rate.
	ShimmerHz float64
}

type Params struct {
	Modes []Mode
	// DriftHz and DriftCents drive per-oscillator micro detuning.
	DriftHz    float64
	DriftCents float64
	// RumbleHz is the highpass corner that strips the sub band.
	RumbleHz float64
}

// DefaultParams approximates a mid-sized bronze bowl: a strong
// fundamental with inharmonic upper modes.
func DefaultParams() Params {
	return Params{
		Modes: []Mode{
			{FreqHz: 196, Level: 0.50, Spread: 0.9, ShimmerHz: 0.11},
			{FreqHz: 442, Level: 0.30, Spread: 1.4, ShimmerHz: 0.17},
			{FreqHz: 731, Level: 0.16, Spread: 2.1, ShimmerHz: 0.23},
			{FreqHz: 1083, Level: 0.08, Spread: 2.8, ShimmerHz: 0.31},
		},
		DriftHz:    0.043,
		DriftCents: 4,
		RumbleHz:   60,
	}
}

// oscsPerCluster places one oscillator on the mode and one on each side.
const oscsPerCluster = 3

type modalOsc struct {
	osc    dsp.Osc
	baseHz float64
	drift  lfo.LFO
}

type cluster struct {
	oscs    [oscsPerCluster]modalOsc
	level   float64
	shimmer lfo.LFO
}

type Graph struct {
	sampleRate float64
	clusters   []cluster
	driftSpan  float64 // max drift as a frequency ratio offset
	hpLeft     dsp.OnePole
	hpRight    dsp.OnePole
	pan        lfo.LFO
}

func New(sampleRate int, params Params) *Graph {
	sr := float64(sampleRate)
	g := &Graph{
		sampleRate: sr,
		clusters:   make([]cluster, len(params.Modes)),
		driftSpan:  params.DriftCents / 1200 * math.Ln2,
		hpLeft:     dsp.NewOnePole(params.RumbleHz, sr),
		hpRight:    dsp.NewOnePole(params.RumbleHz, sr),
	}
	for i, mode := range params.Modes {
		c := &g.clusters[i]
		c.level = mode.Level
		c.shimmer.Set(1, mode.ShimmerHz, lfo.WaveSine)
		// Phase-offset the shimmer LFOs so clusters breathe out of step.
		c.shimmer.SetPhase(float64(i) * 0.31)
		offsets := [oscsPerCluster]float64{0, -mode.Spread, mode.Spread}
		for j := range c.oscs {
			o := &c.oscs[j]
			o.baseHz = mode.FreqHz + offsets[j]
			o.osc = dsp.NewOsc(o.baseHz, sr)
			o.drift.Set(1, params.DriftHz*(1+0.13*float64(j)), lfo.WaveSine)
			o.drift.SetPhase(float64(i*oscsPerCluster+j) * 0.17)
		}
	}
	// A very slow pan drift keeps the stereo image moving.
	g.pan.Set(0.3, 0.021, lfo.WaveSine)
	return g
}

func (g *Graph) Advance() (float32, float32) {
	var sum float64
	for i := range g.clusters {
		c := &g.clusters[i]
		amp := 0.4 + 0.6*c.shimmer.Unipolar(g.sampleRate)
		var cs float64
		for j := range c.oscs {
			o := &c.oscs[j]
			ratio := 1 + g.driftSpan*o.drift.Sample(g.sampleRate)
			o.osc.SetFreq(o.baseHz*ratio, g.sampleRate)
			cs += o.osc.Next()
		}
		sum += cs / oscsPerCluster * c.level * amp
	}
	sum *= 0.5

	pan := g.pan.Sample(g.sampleRate)
	l := g.hpLeft.Highpass(sum * (1 - pan))
	r := g.hpRight.Highpass(sum * (1 + pan))
	return float32(l), float32(r)
}
