package drums

import (
	"math"

	"github.com/ambitone/ambitone-go/internal/pattern"
)

// Pool sizes are sized so exhaustion is rare given each instrument's decay
// and typical trigger density; the steal policy covers the remainder.
const (
	kickPoolSize  = 4
	snarePoolSize = 4
	hatPoolSize   = 6
	crashPoolSize = 3
)

// Fixed stereo placement per instrument, indexed by pattern.Instrument.
var panWeights = [4][2]float64{
	{0.50, 0.50}, // kick
	{0.55, 0.45}, // snare
	{0.38, 0.62}, // hat
	{0.60, 0.40}, // crash
}

// Graph is the percussion synthesis graph: the sequencer drives the four
// voice pools, pools are mixed with fixed pans, and the sum is soft-clipped
// before the renderer's master gain stage.
type Graph struct {
	seq        *Sequencer
	sampleRate float64
	pools      [4]*Pool
	fire       func(instrument pattern.Instrument, velocity float64, open bool)
}

func New(pat *pattern.Pattern, sampleRate int) (*Graph, error) {
	seq, err := NewSequencer(pat, sampleRate)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		seq:        seq,
		sampleRate: float64(sampleRate),
	}
	g.pools[pattern.Kick] = NewPool(kickPoolSize, func(i int) Voice { return &KickVoice{} })
	g.pools[pattern.Snare] = NewPool(snarePoolSize, func(i int) Voice { return NewSnareVoice(uint32(0x5EED + i*131)) })
	g.pools[pattern.Hat] = NewPool(hatPoolSize, func(i int) Voice { return NewHatVoice(uint32(0xACE1 + i*97)) })
	g.pools[pattern.Crash] = NewPool(crashPoolSize, func(i int) Voice { return NewCrashVoice(uint32(0xC0A1 + i*211)) })
	// Bound once so Advance stays allocation-free.
	g.fire = func(instrument pattern.Instrument, velocity float64, open bool) {
		g.pools[instrument].Trigger(velocity, open, g.sampleRate)
	}
	return g, nil
}

// LoopSamples reports the loop length in samples.
func (g *Graph) LoopSamples() int { return g.seq.LoopSamples() }

// Pool exposes the pool for an instrument; tests inspect activity through it.
func (g *Graph) Pool(instrument pattern.Instrument) *Pool {
	return g.pools[instrument]
}

// Advance renders one stereo frame.
func (g *Graph) Advance() (float32, float32) {
	g.seq.Advance(g.fire)

	var l, r float64
	for i := range g.pools {
		s := g.pools[i].Render()
		w := &panWeights[i]
		l += s * w[0]
		r += s * w[1]
	}
	return float32(math.Tanh(l)), float32(math.Tanh(r))
}
