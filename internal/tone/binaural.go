// Package tone holds the oscillator-based graphs: the binaural dual tone,
// the isochronic amplitude-modulated carrier, and the multi-layer beating
// field.
package tone

import "github.com/ambitone/ambitone-go/internal/dsp"

// Output level for a single sine so summed graphs stay inside [-1, 1].
const toneLevel = 0.4

// Binaural is the dual-tone graph: one oscillator per ear, no mixing. The
// frequency offset between the two is what produces the perceived beat.
type Binaural struct {
	sampleRate float64
	left       dsp.Osc
	right      dsp.Osc
}

func NewBinaural(leftHz, rightHz float64, sampleRate int) *Binaural {
	sr := float64(sampleRate)
	return &Binaural{
		sampleRate: sr,
		left:       dsp.NewOsc(leftHz, sr),
		right:      dsp.NewOsc(rightHz, sr),
	}
}

// Retune applies live frequency updates; called by the renderer between
// buffers, never mid-frame.
func (g *Binaural) Retune(leftHz, rightHz float64) {
	g.left.SetFreq(leftHz, g.sampleRate)
	g.right.SetFreq(rightHz, g.sampleRate)
}

func (g *Binaural) Advance() (float32, float32) {
	return float32(g.left.Next() * toneLevel), float32(g.right.Next() * toneLevel)
}
