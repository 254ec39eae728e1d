package audio

import "sync"

// MemDevice is an in-memory Device for tests and offline use. Callbacks run
// only when the caller pumps it, so tests control time precisely, and route
// changes can be injected on demand.
type MemDevice struct {
	mu         sync.Mutex
	sampleRate int
	src        SampleSource
	started    bool
	stopped    bool
	onRoute    func()

	Pumped int // total frames rendered
}

func NewMemDevice(sampleRate int) *MemDevice {
	return &MemDevice{sampleRate: sampleRate}
}

func (d *MemDevice) SampleRate() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sampleRate
}

func (d *MemDevice) Connect(src SampleSource) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.src = src
	return nil
}

func (d *MemDevice) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.src == nil {
		return ErrNotConnected
	}
	if !d.stopped {
		d.started = true
	}
	return nil
}

func (d *MemDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	return nil
}

func (d *MemDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	d.stopped = true
	d.src = nil
	return nil
}

func (d *MemDevice) SetRouteListener(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onRoute = fn
}

// Pump renders the given number of frames through the connected source and
// returns the interleaved buffer. Returns nil when the device is not
// started, mirroring a silent backend.
func (d *MemDevice) Pump(frames int) []float32 {
	d.mu.Lock()
	src, started := d.src, d.started
	d.mu.Unlock()
	if !started || src == nil {
		return nil
	}
	buf := make([]float32, frames*2)
	src.Process(buf)
	d.mu.Lock()
	d.Pumped += frames
	d.mu.Unlock()
	return buf
}

// Running reports whether Start has been called and Stop/Pause has not.
func (d *MemDevice) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// Stopped reports whether the device has been torn down.
func (d *MemDevice) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// FireRouteChange simulates an output route/rate change notification.
func (d *MemDevice) FireRouteChange() {
	d.mu.Lock()
	fn := d.onRoute
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}
