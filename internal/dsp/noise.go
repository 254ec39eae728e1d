package dsp

// LCG is a deterministic white-noise source. Seeding it differently per
// voice keeps simultaneous noise voices decorrelated.
type LCG struct {
	state uint32
}

func NewLCG(seed uint32) LCG {
	if seed == 0 {
		seed = 0xACE1
	}
	return LCG{state: seed}
}

// Next advances the generator and maps the full 32-bit state to [-1, 1].
func (n *LCG) Next() float64 {
	n.state = n.state*1664525 + 1013904223
	return float64(n.state)/float64(1<<31) - 1
}

// NextUint exposes the raw state advance for callers that want bits.
func (n *LCG) NextUint() uint32 {
	n.state = n.state*1664525 + 1013904223
	return n.state
}
