package tone

import (
	"github.com/ambitone/ambitone-go/internal/dsp"
	"github.com/ambitone/ambitone-go/internal/lfo"
)

// LayerPair is one left/right frequency pair of the beating field.
type LayerPair struct {
	LeftHz  float64
	RightHz float64
	Level   float64
}

// LayeredParams configures the multi-layer beating graph.
type LayeredParams struct {
	Pairs     []LayerPair
	GateHz    float64 // shared isochronic amplitude gate
	GateDepth float64 // 0 = no gating, 1 = full on/off
	SwellHz   float64 // slow macro swell
}

func DefaultLayeredParams() LayeredParams {
	return LayeredParams{
		Pairs: []LayerPair{
			{LeftHz: 110, RightHz: 114, Level: 0.5},
			{LeftHz: 220, RightHz: 226, Level: 0.3},
			{LeftHz: 330, RightHz: 338, Level: 0.2},
		},
		GateHz:    6,
		GateDepth: 0.6,
		SwellHz:   0.05,
	}
}

// Layered mixes several independent left/right pairs under a shared
// isochronic gate and a slow macro swell.
type Layered struct {
	sampleRate float64
	left       []dsp.Osc
	right      []dsp.Osc
	levels     []float64
	gate       lfo.LFO
	gateDepth  float64
	swell      lfo.LFO
}

func NewLayered(sampleRate int, params LayeredParams) *Layered {
	sr := float64(sampleRate)
	g := &Layered{
		sampleRate: sr,
		left:       make([]dsp.Osc, len(params.Pairs)),
		right:      make([]dsp.Osc, len(params.Pairs)),
		levels:     make([]float64, len(params.Pairs)),
		gateDepth:  params.GateDepth,
	}
	for i, pair := range params.Pairs {
		g.left[i] = dsp.NewOsc(pair.LeftHz, sr)
		g.right[i] = dsp.NewOsc(pair.RightHz, sr)
		g.levels[i] = pair.Level
	}
	g.gate.Set(1, params.GateHz, lfo.WaveSine)
	g.swell.Set(1, params.SwellHz, lfo.WaveSine)
	// Start the swell mid-rise so sessions do not open at the trough.
	g.swell.SetPhase(0.25)
	return g
}

func (g *Layered) Advance() (float32, float32) {
	gate := 1 - g.gateDepth + g.gateDepth*g.gate.Unipolar(g.sampleRate)
	swell := 0.7 + 0.3*g.swell.Unipolar(g.sampleRate)
	mod := gate * swell * toneLevel

	var l, r float64
	for i := range g.left {
		l += g.left[i].Next() * g.levels[i]
		r += g.right[i].Next() * g.levels[i]
	}
	return float32(l * mod), float32(r * mod)
}
