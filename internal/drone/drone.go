// Package drone renders a multi-partial drone. Partials split into a
// low and a mid group; each group is driven by its own composed
// envelope: a sharply shaped main pulse, a faster secondary pulse, and
// a slow macro wobble. The mix runs through a lowpass so the top stays
// soft.
package drone

import (
	"math"

	"github.com/ambitone/ambitone-go/internal/dsp"
	"github.com/ambitone/ambitone-go/internal/lfo"
)

type Partial struct {
	FreqHz float64
	Level  float64
}

type Params struct {
	Low []Partial
	Mid []Partial
	// Pulse rates for the two composed group envelopes.
	LowPulseHz  float64
	MidPulseHz  float64
	SecondaryHz float64
	WobbleHz    float64
	// LowpassHz shapes the final mix.
	LowpassHz float64
}

func DefaultParams() Params {
	return Params{
		Low: []Partial{
			{FreqHz: 55, Level: 0.55},
			{FreqHz: 110, Level: 0.35},
			{FreqHz: 165, Level: 0.18},
		},
		Mid: []Partial{
			{FreqHz: 220, Level: 0.24},
			{FreqHz: 275, Level: 0.14},
			{FreqHz: 330, Level: 0.10},
		},
		LowPulseHz:  0.061,
		MidPulseHz:  0.089,
		SecondaryHz: 0.47,
		WobbleHz:    0.013,
		LowpassHz:   900,
	}
}

// groupEnv composes the three modulators into one [0,1] gain.
type groupEnv struct {
	pulse     lfo.LFO
	secondary lfo.LFO
	wobble    lfo.LFO
}

func newGroupEnv(pulseHz, secondaryHz, wobbleHz, phase float64) groupEnv {
	var e groupEnv
	e.pulse.Set(1, pulseHz, lfo.WaveSine)
	e.pulse.SetPhase(phase)
	e.secondary.Set(1, secondaryHz, lfo.WaveSine)
	e.secondary.SetPhase(phase + 0.41)
	e.wobble.Set(1, wobbleHz, lfo.WaveSine)
	return e
}

func (e *groupEnv) next(sampleRate float64) float64 {
	// Raising the main pulse to the fourth power sharpens the swell
	// into distinct breaths instead of a plain sine fade.
	p := e.pulse.Unipolar(sampleRate)
	main := p * p * p * p
	fast := 0.85 + 0.15*e.secondary.Unipolar(sampleRate)
	slow := 0.75 + 0.25*e.wobble.Unipolar(sampleRate)
	return (0.25 + 0.75*main) * fast * slow
}

type group struct {
	oscs   []dsp.Osc
	levels []float64
	env    groupEnv
}

func newGroup(partials []Partial, sr, pulseHz, secondaryHz, wobbleHz, phase float64) group {
	g := group{
		oscs:   make([]dsp.Osc, len(partials)),
		levels: make([]float64, len(partials)),
		env:    newGroupEnv(pulseHz, secondaryHz, wobbleHz, phase),
	}
	for i, p := range partials {
		g.oscs[i] = dsp.NewOsc(p.FreqHz, sr)
		g.levels[i] = p.Level
	}
	return g
}

func (g *group) next(sampleRate float64) float64 {
	var sum float64
	for i := range g.oscs {
		sum += g.oscs[i].Next() * g.levels[i]
	}
	return sum * g.env.next(sampleRate)
}

type Graph struct {
	sampleRate float64
	low        group
	mid        group
	lp         dsp.OnePole
}

func New(sampleRate int, params Params) *Graph {
	sr := float64(sampleRate)
	return &Graph{
		sampleRate: sr,
		low:        newGroup(params.Low, sr, params.LowPulseHz, params.SecondaryHz, params.WobbleHz, 0.25),
		mid:        newGroup(params.Mid, sr, params.MidPulseHz, params.SecondaryHz*1.31, params.WobbleHz, 0.55),
		lp:         dsp.NewOnePole(params.LowpassHz, sr),
	}
}

func (g *Graph) Advance() (float32, float32) {
	low := g.low.next(g.sampleRate)
	mid := g.mid.next(g.sampleRate)
	s := math.Tanh((low + mid) * 0.45)
	out := float32(g.lp.Lowpass(s))
	return out, out
}
