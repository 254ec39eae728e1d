// Package drums synthesizes the percussion loop: four instrument voice
// types built from the dsp primitives, fixed pre-allocated pools, and a
// sample-accurate trigger sequencer, mixed to stereo behind engine.Graph.
package drums

import (
	"math"

	"github.com/ambitone/ambitone-go/internal/dsp"
)

// Voice is one-shot percussion synthesis. Trigger fully resets internal
// state and may be called while the voice is still decaying. Render returns
// 0 once the controlling envelope has crossed the voice's silence threshold;
// that crossing, not a timer, is what frees the voice.
type Voice interface {
	Trigger(velocity float64, open bool, sampleRate float64)
	Render() float64
	Active() bool
}

// KickVoice is a pitch-enveloped sine: a fast glide from a high start
// frequency down to the body frequency, under a short amplitude envelope.
type KickVoice struct {
	active     bool
	phase      float64
	sampleRate float64
	ampEnv     dsp.ExpEnv
	pitchEnv   dsp.ExpEnv
}

const (
	kickBodyHz   = 48.0
	kickGlideHz  = 110.0 // added to body at trigger, decays fast
	kickAmpMs    = 45.0
	kickPitchMs  = 28.0
	kickSilence  = 1e-3
	snareSilence = 2e-3
	hatSilence   = 3e-3
	crashSilence = 1e-3
)

func (v *KickVoice) Trigger(velocity float64, _ bool, sampleRate float64) {
	v.sampleRate = sampleRate
	v.phase = 0
	v.ampEnv.SetDecay(dsp.DecayCoef(kickAmpMs, sampleRate))
	v.ampEnv.Trigger(velocity)
	v.pitchEnv.SetDecay(dsp.DecayCoef(kickPitchMs, sampleRate))
	v.pitchEnv.Trigger(1)
	v.active = true
}

func (v *KickVoice) Render() float64 {
	if !v.active {
		return 0
	}
	amp := v.ampEnv.Process()
	if amp < kickSilence {
		v.active = false
		return 0
	}
	freq := kickBodyHz + kickGlideHz*v.pitchEnv.Process()
	v.phase += freq / v.sampleRate
	if v.phase >= 1 {
		v.phase -= 1
	}
	s := math.Sin(2 * math.Pi * v.phase)
	return math.Tanh(1.8 * s * amp)
}

func (v *KickVoice) Active() bool { return v.active }

// SnareVoice is noise through two resonant bands (shell body and rattle)
// plus a highpassed snap layer.
type SnareVoice struct {
	active bool
	seed   uint32
	noise  dsp.LCG
	body   dsp.Bandpass
	rattle dsp.Bandpass
	snap   dsp.OnePole
	ampEnv dsp.ExpEnv
}

func NewSnareVoice(seed uint32) *SnareVoice {
	return &SnareVoice{seed: seed}
}

func (v *SnareVoice) Trigger(velocity float64, _ bool, sampleRate float64) {
	v.noise = dsp.NewLCG(v.seed)
	v.body = dsp.NewBandpass(330, 1.6, sampleRate)
	v.rattle = dsp.NewBandpass(1900, 1.1, sampleRate)
	v.snap = dsp.NewOnePole(5500, sampleRate)
	v.ampEnv.SetDecay(dsp.DecayCoef(110, sampleRate))
	v.ampEnv.Trigger(velocity)
	v.active = true
}

func (v *SnareVoice) Render() float64 {
	if !v.active {
		return 0
	}
	amp := v.ampEnv.Process()
	if amp < snareSilence {
		v.active = false
		return 0
	}
	n := v.noise.Next()
	s := 0.45*v.body.Process(n) + 0.4*v.rattle.Process(n) + 0.3*v.snap.Highpass(n)
	return s * amp
}

func (v *SnareVoice) Active() bool { return v.active }

// HatVoice is noise through three narrow high resonators. The open variant
// selects a much longer decay at trigger time; everything else is shared.
type HatVoice struct {
	active bool
	seed   uint32
	noise  dsp.LCG
	res    [3]dsp.Bandpass
	ampEnv dsp.ExpEnv
}

func NewHatVoice(seed uint32) *HatVoice {
	return &HatVoice{seed: seed}
}

var hatBands = [3]float64{6600, 8100, 9800}

const (
	hatClosedMs = 35.0
	hatOpenMs   = 280.0
)

func (v *HatVoice) Trigger(velocity float64, open bool, sampleRate float64) {
	v.noise = dsp.NewLCG(v.seed)
	for i, fc := range hatBands {
		v.res[i] = dsp.NewBandpass(fc, 8, sampleRate)
	}
	ms := hatClosedMs
	if open {
		ms = hatOpenMs
	}
	v.ampEnv.SetDecay(dsp.DecayCoef(ms, sampleRate))
	v.ampEnv.Trigger(velocity)
	v.active = true
}

func (v *HatVoice) Render() float64 {
	if !v.active {
		return 0
	}
	amp := v.ampEnv.Process()
	if amp < hatSilence {
		v.active = false
		return 0
	}
	n := v.noise.Next()
	var s float64
	for i := range v.res {
		s += v.res[i].Process(n)
	}
	return s * amp
}

func (v *HatVoice) Active() bool { return v.active }

// CrashVoice reuses the hat's resonator technique at lower centers with a
// long decay.
type CrashVoice struct {
	active bool
	seed   uint32
	noise  dsp.LCG
	res    [3]dsp.Bandpass
	ampEnv dsp.ExpEnv
}

func NewCrashVoice(seed uint32) *CrashVoice {
	return &CrashVoice{seed: seed}
}

var crashBands = [3]float64{3400, 4500, 5700}

func (v *CrashVoice) Trigger(velocity float64, _ bool, sampleRate float64) {
	v.noise = dsp.NewLCG(v.seed)
	for i, fc := range crashBands {
		v.res[i] = dsp.NewBandpass(fc, 6, sampleRate)
	}
	v.ampEnv.SetDecay(dsp.DecayCoef(850, sampleRate))
	v.ampEnv.Trigger(velocity)
	v.active = true
}

func (v *CrashVoice) Render() float64 {
	if !v.active {
		return 0
	}
	amp := v.ampEnv.Process()
	if amp < crashSilence {
		v.active = false
		return 0
	}
	n := v.noise.Next()
	var s float64
	for i := range v.res {
		s += v.res[i].Process(n)
	}
	return s * amp
}

func (v *CrashVoice) Active() bool { return v.active }
