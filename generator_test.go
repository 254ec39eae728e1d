package ambitone

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	intaudio "github.com/ambitone/ambitone-go/internal/audio"
)

const testRate = 8000

// memOpener hands out MemDevices and records every one it opened, so a
// test can inspect devices from superseded sessions.
type memOpener struct {
	mu      sync.Mutex
	rate    int
	fail    error
	devices []*intaudio.MemDevice
}

func newMemOpener(rate int) *memOpener {
	return &memOpener{rate: rate}
}

func (o *memOpener) open(int) (intaudio.Device, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail != nil {
		return nil, o.fail
	}
	d := intaudio.NewMemDevice(o.rate)
	o.devices = append(o.devices, d)
	return d, nil
}

func (o *memOpener) device(i int) *intaudio.MemDevice {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.devices[i]
}

func (o *memOpener) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.devices)
}

func binauralConfig() Config {
	return Config{Mode: ModeBinaural, FreqLeft: 100, FreqRight: 110}
}

func newTestGenerator(opts ...GeneratorOption) (*Generator, *memOpener) {
	opener := newMemOpener(testRate)
	opts = append([]GeneratorOption{
		WithDeviceOpener(opener.open),
		WithFadeDuration(10 * time.Millisecond),
	}, opts...)
	return NewGenerator(opts...), opener
}

func TestStartProducesAudio(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	if !g.IsPlaying() {
		t.Fatal("expected IsPlaying after Start")
	}
	buf := opener.device(0).Pump(testRate)
	if buf == nil {
		t.Fatal("device not running")
	}
	var sum float64
	for _, s := range buf {
		sum += float64(s) * float64(s)
	}
	if math.Sqrt(sum/float64(len(buf))) < 0.05 {
		t.Fatal("expected audible output after the fade-in")
	}
	g.ForceStop()
}

func TestStartFailureStaysIdle(t *testing.T) {
	g, opener := newTestGenerator()
	opener.fail = errors.New("device busy")
	if err := g.Start(binauralConfig()); err == nil {
		t.Fatal("expected error")
	}
	if g.IsPlaying() {
		t.Fatal("generator must stay idle on device failure")
	}
}

func TestStartBadConfigReleasesDevice(t *testing.T) {
	g, opener := newTestGenerator()
	err := g.Start(Config{Mode: ModeDrums}) // drums without a pattern
	if err == nil {
		t.Fatal("expected error")
	}
	if g.IsPlaying() {
		t.Fatal("generator must stay idle")
	}
	if !opener.device(0).Stopped() {
		t.Fatal("device from the failed start must be released")
	}
}

func TestStopFadesThenTearsDown(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	g.Stop(func() { close(done) })
	// Still playing through the fade window.
	if opener.device(0).Stopped() {
		t.Fatal("teardown must wait for the fade")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop completion never fired")
	}
	if !opener.device(0).Stopped() {
		t.Fatal("device must be stopped after the fade")
	}
	if g.IsPlaying() {
		t.Fatal("expected idle after Stop completes")
	}
}

func TestStopWhenIdleCompletesImmediately(t *testing.T) {
	g, _ := newTestGenerator()
	called := false
	g.Stop(func() { called = true })
	if !called {
		t.Fatal("idle Stop must invoke completion synchronously")
	}
}

func TestStopThenStartLeavesOneSession(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	g.Stop(func() { close(done) })
	// Restart before the fade elapses: the scheduled teardown must go
	// stale instead of killing the new session.
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stale stop completion never fired")
	}
	if !opener.device(0).Stopped() {
		t.Fatal("first device must be gone")
	}
	if !opener.device(1).Running() {
		t.Fatal("second session must survive the stale teardown")
	}
	if !g.IsPlaying() {
		t.Fatal("expected the new session to be playing")
	}
	g.ForceStop()
}

func TestForceStopIsSynchronous(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	g.ForceStop()
	if !opener.device(0).Stopped() {
		t.Fatal("ForceStop must stop the device before returning")
	}
	if g.IsPlaying() {
		t.Fatal("expected idle after ForceStop")
	}
}

func TestPauseSuspendIsIdempotent(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	g.Pause()
	g.Pause()
	if g.IsPlaying() {
		t.Fatal("expected paused state")
	}
	if opener.device(0).Running() {
		t.Fatal("device must be suspended")
	}
	if opener.device(0).Stopped() {
		t.Fatal("suspend must keep the session allocated")
	}
	if err := g.Resume(); err != nil {
		t.Fatal(err)
	}
	if !g.IsPlaying() || !opener.device(0).Running() {
		t.Fatal("expected playback after Resume")
	}
	g.ForceStop()
}

func TestPauseReleaseRebuildsOnResume(t *testing.T) {
	g, opener := newTestGenerator(WithPauseStrategy(PauseRelease))
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	g.Pause()
	if !opener.device(0).Stopped() {
		t.Fatal("release strategy must free the device on Pause")
	}
	if err := g.Resume(); err != nil {
		t.Fatal(err)
	}
	if opener.count() != 2 {
		t.Fatalf("expected a rebuilt session, got %d devices", opener.count())
	}
	if !opener.device(1).Running() {
		t.Fatal("rebuilt session must be running")
	}
	g.ForceStop()
}

func TestRouteChangeRebuildsSession(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	opener.rate = 11025 // the replacement device comes up at a new rate
	opener.device(0).FireRouteChange()
	if !opener.device(0).Stopped() {
		t.Fatal("old device must be torn down")
	}
	if opener.count() != 2 {
		t.Fatalf("expected a rebuilt session, got %d devices", opener.count())
	}
	next := opener.device(1)
	if !next.Running() {
		t.Fatal("rebuilt session must be running")
	}
	if next.SampleRate() != 11025 {
		t.Fatalf("rebuild must use the new device rate, got %d", next.SampleRate())
	}
	g.ForceStop()
}

func TestRouteChangeWhenIdleIsIgnored(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	dev := opener.device(0)
	g.ForceStop()
	dev.FireRouteChange()
	if opener.count() != 1 {
		t.Fatal("route change after teardown must not start a session")
	}
}

func TestUpdateFrequenciesRetunesLive(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	dev := opener.device(0)
	dev.Pump(testRate / 4) // let the fade land
	g.UpdateFrequencies(400, 404)
	buf := dev.Pump(testRate)
	crossings := 0
	for i := 2; i < len(buf); i += 2 {
		if (buf[i-2] < 0) != (buf[i] < 0) {
			crossings++
		}
	}
	// A 400 Hz sine crosses zero 800 times per second.
	if crossings < 780 || crossings > 820 {
		t.Fatalf("expected ~800 zero crossings after retune, got %d", crossings)
	}
	g.ForceStop()
}

func TestSetVolumeScalesOutput(t *testing.T) {
	g, opener := newTestGenerator()
	if err := g.Start(binauralConfig()); err != nil {
		t.Fatal(err)
	}
	dev := opener.device(0)
	dev.Pump(testRate / 4)
	loud := dev.Pump(testRate)
	g.SetVolume(0.25)
	dev.Pump(testRate / 4) // ramp to the new target
	quiet := dev.Pump(testRate)

	rms := func(buf []float32) float64 {
		var sum float64
		for _, s := range buf {
			sum += float64(s) * float64(s)
		}
		return math.Sqrt(sum / float64(len(buf)))
	}
	lr, qr := rms(loud), rms(quiet)
	if qr > lr*0.5 {
		t.Fatalf("expected volume change to attenuate output: %f vs %f", lr, qr)
	}
	g.ForceStop()
}

func TestBuildGraphValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing frequencies", Config{Mode: ModeBinaural}},
		{"missing carrier", Config{Mode: ModeIsochronic, FreqLeft: 0}},
		{"no pulse offset", Config{Mode: ModeIsochronic, FreqLeft: 200, FreqRight: 200}},
		{"missing pattern", Config{Mode: ModeDrums}},
		{"unknown mode", Config{Mode: Mode("theremin")}},
	}
	for _, tc := range cases {
		if _, err := buildGraph(tc.cfg, testRate); err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}
