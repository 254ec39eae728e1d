// Package ambitone synthesizes ambient audio textures in real time:
// binaural tone pairs, isochronic pulses, layered beating fields, noise
// beds, singing-bowl and drone textures, and a pattern-driven drum loop.
// A Generator owns the session lifecycle on the control side; all
// synthesis state is owned exclusively by the render callback.
package ambitone

import (
	"errors"
	"fmt"
	"sync"
	"time"

	intaudio "github.com/ambitone/ambitone-go/internal/audio"
	intbowl "github.com/ambitone/ambitone-go/internal/bowl"
	intdrone "github.com/ambitone/ambitone-go/internal/drone"
	intdrums "github.com/ambitone/ambitone-go/internal/drums"
	intengine "github.com/ambitone/ambitone-go/internal/engine"
	intnoise "github.com/ambitone/ambitone-go/internal/noise"
	intpattern "github.com/ambitone/ambitone-go/internal/pattern"
	inttone "github.com/ambitone/ambitone-go/internal/tone"
)

type Mode string

const (
	ModeBinaural   Mode = "binaural"
	ModeIsochronic Mode = "isochronic"
	ModeLayered    Mode = "layered"
	ModePink       Mode = "pink"
	ModeBrown      Mode = "brown"
	ModeBowl       Mode = "bowl"
	ModeDrone      Mode = "drone"
	ModeDrums      Mode = "drums"
)

// Config describes one session. FreqLeft/FreqRight drive the tone modes
// (for isochronic the left value is the carrier and the left/right offset
// is the pulse rate); Pattern drives ModeDrums; NoiseSeed seeds the noise
// modes, 0 meaning the default seed.
type Config struct {
	Mode       Mode
	FreqLeft   float64
	FreqRight  float64
	Pattern    *intpattern.Pattern
	NoiseSeed  uint32
	SampleRate int // preferred rate; 0 means DefaultSampleRate
}

const DefaultSampleRate = 48000

// PauseStrategy selects what Pause does with the audio device.
type PauseStrategy int

const (
	// PauseSuspend keeps the graph allocated and suspends the device.
	// Resume is fast but the device stays claimed.
	PauseSuspend PauseStrategy = iota
	// PauseRelease tears the session down and rebuilds it on Resume from
	// the cached configuration, releasing the device immediately.
	PauseRelease
)

const (
	defaultFade = 2 * time.Second
	// fadeMargin pads the scheduled teardown past the fade so the ramp
	// has landed before the device is stopped.
	fadeMargin = 50 * time.Millisecond
)

type GeneratorOption func(*Generator)

// WithDeviceOpener substitutes the function that opens the output
// device. Tests inject an in-memory device through this.
func WithDeviceOpener(open intaudio.OpenFunc) GeneratorOption {
	return func(g *Generator) { g.open = open }
}

func WithFadeDuration(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d > 0 {
			g.fade = d
		}
	}
}

func WithPauseStrategy(s PauseStrategy) GeneratorOption {
	return func(g *Generator) { g.pauseStrategy = s }
}

// session bundles everything torn down together. The renderer is owned
// by the device callback once Start returns; the control side only ever
// touches the params block and the device.
type session struct {
	device intaudio.Device
	params *intengine.Params
	config Config
}

// Generator is the control-side owner of one playback slot. All methods
// are safe to call from any goroutine but are expected to be driven from
// one control context; none of them run on the render thread.
type Generator struct {
	mu            sync.Mutex
	open          intaudio.OpenFunc
	fade          time.Duration
	pauseStrategy PauseStrategy

	// generation invalidates scheduled teardowns: any deferred action
	// captures the value at scheduling time and becomes a no-op if a
	// newer Start or ForceStop has bumped it since.
	generation uint64

	session    *session
	paused     bool
	lastConfig Config
	haveConfig bool
	volume     float64
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		open:   intaudio.OpenOutputDevice,
		fade:   defaultFade,
		volume: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start begins a session with the given configuration, implicitly
// tearing down any current one first. On device failure the Generator
// stays idle and the error is returned.
func (g *Generator) Start(cfg Config) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startLocked(cfg)
}

func (g *Generator) startLocked(cfg Config) error {
	g.generation++
	g.teardownLocked()

	rate := cfg.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	device, err := g.open(rate)
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	// The device may have come up at its own rate; coefficients bake
	// against what it actually runs at.
	rate = device.SampleRate()

	graph, err := buildGraph(cfg, rate)
	if err != nil {
		_ = device.Stop()
		return err
	}

	params := intengine.NewParams(g.volume, cfg.FreqLeft, cfg.FreqRight)
	renderer := intengine.NewRenderer(graph, params, rate, g.fade.Seconds(), false)

	if err := device.Connect(renderer); err != nil {
		_ = device.Stop()
		return fmt.Errorf("connect: %w", err)
	}
	device.SetRouteListener(g.handleRouteChange)
	if err := device.Start(); err != nil {
		_ = device.Stop()
		return fmt.Errorf("start device: %w", err)
	}

	g.session = &session{device: device, params: params, config: cfg}
	g.paused = false
	g.lastConfig = cfg
	g.haveConfig = true
	return nil
}

// Stop fades the session out and schedules teardown for after the fade.
// onComplete is always invoked, even when there is nothing to stop or
// when a newer session has taken over in the meantime; it may be nil.
func (g *Generator) Stop(onComplete func()) {
	g.mu.Lock()
	if g.session == nil {
		g.paused = false
		g.mu.Unlock()
		if onComplete != nil {
			onComplete()
		}
		return
	}
	g.session.params.SetTargetGain(0)
	gen := g.generation
	fade := g.fade
	g.mu.Unlock()

	time.AfterFunc(fade+fadeMargin, func() {
		g.mu.Lock()
		if g.generation == gen {
			g.teardownLocked()
		}
		g.mu.Unlock()
		if onComplete != nil {
			onComplete()
		}
	})
}

// ForceStop tears the session down synchronously with no fade. Used on
// exit and for device-change recovery.
func (g *Generator) ForceStop() {
	g.mu.Lock()
	g.generation++
	if g.session != nil {
		g.session.params.SetTargetGain(0)
	}
	g.teardownLocked()
	g.mu.Unlock()
}

// teardownLocked stops the device synchronously, which guarantees the
// callback will not run again, and only then drops the params block.
func (g *Generator) teardownLocked() {
	if g.session == nil {
		g.paused = false
		return
	}
	_ = g.session.device.Stop()
	g.session = nil
	g.paused = false
}

// Pause suspends output. With PauseSuspend the device is paused in
// place; with PauseRelease the session is torn down and Resume rebuilds
// it. Repeated calls are no-ops.
func (g *Generator) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused || g.session == nil {
		return
	}
	switch g.pauseStrategy {
	case PauseRelease:
		g.generation++
		g.teardownLocked()
	default:
		g.session.params.SetTargetGain(0)
		_ = g.session.device.Pause()
	}
	g.paused = true
}

// Resume continues a paused session. Output fades back in from wherever
// the ramp was left rather than jumping.
func (g *Generator) Resume() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused {
		return nil
	}
	if g.session == nil {
		if !g.haveConfig {
			g.paused = false
			return errors.New("ambitone: nothing to resume")
		}
		return g.startLocked(g.lastConfig)
	}
	g.session.params.SetTargetGain(g.volume)
	if err := g.session.device.Start(); err != nil {
		return fmt.Errorf("resume device: %w", err)
	}
	g.paused = false
	return nil
}

// handleRouteChange rebuilds the session against the new device, since
// sample-rate-dependent coefficients are baked at construction.
func (g *Generator) handleRouteChange() {
	g.mu.Lock()
	if g.session == nil {
		g.mu.Unlock()
		return
	}
	cfg := g.session.config
	g.mu.Unlock()

	g.ForceStop()
	g.mu.Lock()
	_ = g.startLocked(cfg)
	g.mu.Unlock()
}

func (g *Generator) IsPlaying() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session != nil && !g.paused
}

// UpdateFrequencies retunes the tone modes live. The render side picks
// the new pair up at the next buffer boundary. Also cached so a rebuilt
// session keeps the latest tuning.
func (g *Generator) UpdateFrequencies(leftHz, rightHz float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastConfig.FreqLeft = leftHz
	g.lastConfig.FreqRight = rightHz
	if g.session != nil {
		g.session.config.FreqLeft = leftHz
		g.session.config.FreqRight = rightHz
		g.session.params.SetFrequencies(leftHz, rightHz)
	}
}

// SetVolume scales the session loudness. Takes effect through the same
// smoothing ramp as start and stop fades.
func (g *Generator) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.volume = v
	if g.session != nil && !g.paused {
		g.session.params.SetTargetGain(v)
	}
}

func (g *Generator) Volume() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume
}

func buildGraph(cfg Config, sampleRate int) (intengine.Graph, error) {
	switch cfg.Mode {
	case ModeBinaural:
		if cfg.FreqLeft <= 0 || cfg.FreqRight <= 0 {
			return nil, errors.New("ambitone: binaural mode needs positive frequencies")
		}
		return inttone.NewBinaural(cfg.FreqLeft, cfg.FreqRight, sampleRate), nil
	case ModeIsochronic:
		if cfg.FreqLeft <= 0 {
			return nil, errors.New("ambitone: isochronic mode needs a positive carrier frequency")
		}
		pulse := cfg.FreqRight - cfg.FreqLeft
		if pulse < 0 {
			pulse = -pulse
		}
		if pulse == 0 {
			return nil, errors.New("ambitone: isochronic mode needs distinct frequencies for the pulse rate")
		}
		return inttone.NewIsochronic(cfg.FreqLeft, pulse, sampleRate), nil
	case ModeLayered:
		return inttone.NewLayered(sampleRate, inttone.DefaultLayeredParams()), nil
	case ModePink:
		return intnoise.NewPink(cfg.NoiseSeed), nil
	case ModeBrown:
		return intnoise.NewBrown(cfg.NoiseSeed), nil
	case ModeBowl:
		return intbowl.New(sampleRate, intbowl.DefaultParams()), nil
	case ModeDrone:
		return intdrone.New(sampleRate, intdrone.DefaultParams()), nil
	case ModeDrums:
		if cfg.Pattern == nil {
			return nil, errors.New("ambitone: drums mode needs a pattern")
		}
		graph, err := intdrums.New(cfg.Pattern, sampleRate)
		if err != nil {
			return nil, err
		}
		return graph, nil
	default:
		return nil, fmt.Errorf("ambitone: unknown mode %q", cfg.Mode)
	}
}
