package audio

import (
	"fmt"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// The oto context is process-global and fixed-rate, so it is created once
// and every device after the first must match its rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// otoDevice plays a SampleSource through the shared oto context.
type otoDevice struct {
	ctx        *ebitaudio.Context
	sampleRate int
	player     *ebitaudio.Player
	reader     *StreamReader
	onRoute    func()
}

// OpenOutputDevice opens the process audio output at the given rate.
func OpenOutputDevice(sampleRate int) (Device, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &otoDevice{ctx: ctx, sampleRate: sampleRate}, nil
}

func (d *otoDevice) SampleRate() int { return d.sampleRate }

func (d *otoDevice) Connect(src SampleSource) error {
	reader := NewStreamReader(src)
	player, err := d.ctx.NewPlayerF32(reader)
	if err != nil {
		return err
	}
	d.reader = reader
	d.player = player
	return nil
}

func (d *otoDevice) Start() error {
	if d.player == nil {
		return ErrNotConnected
	}
	d.player.Play()
	return nil
}

func (d *otoDevice) Pause() error {
	if d.player == nil {
		return ErrNotConnected
	}
	d.player.Pause()
	return nil
}

func (d *otoDevice) Stop() error {
	if d.player == nil {
		return nil
	}
	// Close stops the read loop before returning, which is what the
	// teardown ordering relies on.
	d.player.Pause()
	if err := d.player.Close(); err != nil {
		return err
	}
	d.player = nil
	return d.reader.Close()
}

// SetRouteListener is accepted but never fired here: oto follows the OS
// default route internally without a rate change surfacing to us.
func (d *otoDevice) SetRouteListener(fn func()) {
	d.onRoute = fn
}
