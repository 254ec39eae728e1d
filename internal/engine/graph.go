// Package engine holds the render-side core shared by every synthesis mode:
// the lock-free parameter block written by the control context and the
// buffer loop that drives a Graph one stereo frame at a time.
package engine

// Graph renders one stereo frame per call. Implementations own all of their
// state exclusively; after construction nothing but the render context
// touches them.
type Graph interface {
	Advance() (left, right float32)
}

// Retunable graphs accept live frequency updates. The renderer applies the
// shared block's frequencies once per buffer, never mid-frame.
type Retunable interface {
	Retune(leftHz, rightHz float64)
}
