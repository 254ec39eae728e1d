package drums

// Pool is a fixed set of voices for one instrument, allocated once at
// construction. Triggering scans for the first inactive voice by index; if
// every voice is active the scan variable is simply left at the final index,
// so that voice is retriggered. The policy is deliberate: it is branch-free
// of bookkeeping and the chosen index is reproducible from the
// active/inactive pattern alone.
type Pool struct {
	voices []Voice
}

func NewPool(size int, mk func(i int) Voice) *Pool {
	p := &Pool{voices: make([]Voice, size)}
	for i := range p.voices {
		p.voices[i] = mk(i)
	}
	return p
}

// Trigger allocates a voice and fires it. Returns the index used.
func (p *Pool) Trigger(velocity float64, open bool, sampleRate float64) int {
	idx := 0
	for i := range p.voices {
		idx = i
		if !p.voices[i].Active() {
			break
		}
	}
	p.voices[idx].Trigger(velocity, open, sampleRate)
	return idx
}

// Render sums one sample from every voice. Inactive voices contribute 0.
func (p *Pool) Render() float64 {
	var sum float64
	for i := range p.voices {
		sum += p.voices[i].Render()
	}
	return sum
}

// ActiveCount reports how many voices are currently decaying.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].Active() {
			n++
		}
	}
	return n
}
