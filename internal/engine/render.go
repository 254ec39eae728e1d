package engine

import "math"

// Renderer is the callback body installed on the audio device. For every
// frame it steps the master gain toward the shared target, runs the graph,
// and writes interleaved stereo float32. It never blocks, locks, or
// allocates.
type Renderer struct {
	graph    Graph
	params   *Params
	gain     float64
	gainStep float64
	softClip bool
}

// NewRenderer wires a graph to a parameter block. fadeSeconds sets the gain
// ramp slope: the gain covers the full 0..1 range in exactly
// ceil(fadeSeconds·sampleRate) samples.
func NewRenderer(graph Graph, params *Params, sampleRate int, fadeSeconds float64, softClip bool) *Renderer {
	step := 1.0
	if fadeSeconds > 0 {
		step = 1 / (fadeSeconds * float64(sampleRate))
	}
	return &Renderer{
		graph:    graph,
		params:   params,
		gainStep: step,
		softClip: softClip,
	}
}

// Process fills dst with interleaved stereo frames. The shared block is read
// once per buffer.
func (r *Renderer) Process(dst []float32) {
	target := r.params.TargetGain()
	if rt, ok := r.graph.(Retunable); ok {
		l, rr := r.params.Frequencies()
		rt.Retune(l, rr)
	}
	for i := 0; i+1 < len(dst); i += 2 {
		if diff := target - r.gain; diff != 0 {
			if diff > r.gainStep {
				r.gain += r.gainStep
			} else if diff < -r.gainStep {
				r.gain -= r.gainStep
			} else {
				r.gain = target
			}
		}
		l, rr := r.graph.Advance()
		lf := float64(l) * r.gain
		rf := float64(rr) * r.gain
		if r.softClip {
			lf = math.Tanh(lf)
			rf = math.Tanh(rf)
		}
		dst[i] = float32(lf)
		dst[i+1] = float32(rf)
	}
}

// Gain reports the current ramped gain. Only valid while no device is
// driving Process; offline rendering and tests use it.
func (r *Renderer) Gain() float64 {
	return r.gain
}
