package tone

import (
	"github.com/ambitone/ambitone-go/internal/dsp"
	"github.com/ambitone/ambitone-go/internal/lfo"
)

// Isochronic is a single carrier multiplied by a slow sinusoidal envelope.
// The envelope is mapped to [0, 1] so the carrier pulses instead of phase
// cancelling, and both ears get the identical signal.
type Isochronic struct {
	sampleRate float64
	carrier    dsp.Osc
	pulse      lfo.LFO
}

func NewIsochronic(carrierHz, pulseHz float64, sampleRate int) *Isochronic {
	sr := float64(sampleRate)
	g := &Isochronic{
		sampleRate: sr,
		carrier:    dsp.NewOsc(carrierHz, sr),
	}
	g.pulse.Set(1, pulseHz, lfo.WaveSine)
	return g
}

// Retune maps the shared block's pair onto this graph: left is the carrier,
// the left/right offset is the pulse rate.
func (g *Isochronic) Retune(leftHz, rightHz float64) {
	g.carrier.SetFreq(leftHz, g.sampleRate)
	pulse := rightHz - leftHz
	if pulse < 0 {
		pulse = -pulse
	}
	if pulse > 0 {
		g.pulse.Set(1, pulse, lfo.WaveSine)
	}
}

func (g *Isochronic) Advance() (float32, float32) {
	env := g.pulse.Unipolar(g.sampleRate)
	s := float32(g.carrier.Next() * env * toneLevel)
	return s, s
}
