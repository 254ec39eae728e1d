package engine

import (
	"math"
	"sync/atomic"
)

// Params is the block of scalars shared between the control context and the
// render context. Each field is a float64 stored as uint64 bits so every
// update is a single atomic word store; the render side only ever reads.
type Params struct {
	targetGain atomic.Uint64
	freqLeft   atomic.Uint64
	freqRight  atomic.Uint64
}

func NewParams(targetGain, freqLeft, freqRight float64) *Params {
	p := &Params{}
	p.SetTargetGain(targetGain)
	p.SetFrequencies(freqLeft, freqRight)
	return p
}

func (p *Params) SetTargetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	p.targetGain.Store(math.Float64bits(gain))
}

func (p *Params) TargetGain() float64 {
	return math.Float64frombits(p.targetGain.Load())
}

// SetFrequencies updates the live-tunable left/right frequencies. The two
// stores are independent; the render side tolerates seeing one old and one
// new value for a single buffer.
func (p *Params) SetFrequencies(leftHz, rightHz float64) {
	p.freqLeft.Store(math.Float64bits(leftHz))
	p.freqRight.Store(math.Float64bits(rightHz))
}

func (p *Params) Frequencies() (leftHz, rightHz float64) {
	return math.Float64frombits(p.freqLeft.Load()), math.Float64frombits(p.freqRight.Load())
}
