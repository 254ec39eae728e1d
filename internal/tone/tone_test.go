package tone

import (
	"math"
	"testing"
)

const testRate = 48000

func rms(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func TestBinauralChannelsIndependent(t *testing.T) {
	g := NewBinaural(200, 210, testRate)
	var left, right []float64
	for i := 0; i < testRate; i++ {
		l, r := g.Advance()
		left = append(left, float64(l))
		right = append(right, float64(r))
	}
	if rms(left) < 0.1 || rms(right) < 0.1 {
		t.Fatalf("expected tone energy on both channels, got rms %f / %f", rms(left), rms(right))
	}
	// 210 Hz crosses zero more often than 200 Hz over one second.
	count := func(s []float64) int {
		n := 0
		for i := 1; i < len(s); i++ {
			if (s[i-1] < 0) != (s[i] < 0) {
				n++
			}
		}
		return n
	}
	if count(right) <= count(left) {
		t.Fatalf("expected right channel to oscillate faster: left %d crossings, right %d", count(left), count(right))
	}
}

func TestBinauralRetune(t *testing.T) {
	g := NewBinaural(200, 210, testRate)
	g.Retune(400, 404)
	var left []float64
	for i := 0; i < testRate; i++ {
		l, _ := g.Advance()
		left = append(left, float64(l))
	}
	crossings := 0
	for i := 1; i < len(left); i++ {
		if (left[i-1] < 0) != (left[i] < 0) {
			crossings++
		}
	}
	// A 400 Hz sine crosses zero 800 times per second.
	if crossings < 780 || crossings > 820 {
		t.Fatalf("expected ~800 zero crossings after retune, got %d", crossings)
	}
}

func TestIsochronicPulses(t *testing.T) {
	g := NewIsochronic(220, 8, testRate)
	// Track the envelope by peak magnitude over short windows.
	window := testRate / 100 // 10 ms
	var peaks []float64
	peak := 0.0
	for i := 0; i < testRate; i++ {
		l, r := g.Advance()
		if l != r {
			t.Fatal("isochronic output must be identical on both channels")
		}
		if v := math.Abs(float64(l)); v > peak {
			peak = v
		}
		if (i+1)%window == 0 {
			peaks = append(peaks, peak)
			peak = 0
		}
	}
	var lo, hi float64 = math.Inf(1), 0
	for _, p := range peaks {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	if hi < 0.2 {
		t.Fatalf("expected audible peaks, got max window peak %f", hi)
	}
	if lo > hi*0.25 {
		t.Fatalf("expected the gate to pull the carrier near silence, got min %f max %f", lo, hi)
	}
}

func TestIsochronicRetuneMapsBeatToPulse(t *testing.T) {
	g := NewIsochronic(220, 8, testRate)
	g.Retune(300, 312)
	// Pulse rate should now be 12 Hz: count envelope minima over a second.
	window := testRate / 200 // 5 ms
	var peaks []float64
	peak := 0.0
	for i := 0; i < testRate; i++ {
		l, _ := g.Advance()
		if v := math.Abs(float64(l)); v > peak {
			peak = v
		}
		if (i+1)%window == 0 {
			peaks = append(peaks, peak)
			peak = 0
		}
	}
	hi := 0.0
	for _, p := range peaks {
		hi = math.Max(hi, p)
	}
	dips := 0
	below := false
	for _, p := range peaks {
		if p < hi*0.2 {
			if !below {
				dips++
			}
			below = true
		} else {
			below = false
		}
	}
	if dips < 10 || dips > 14 {
		t.Fatalf("expected ~12 envelope dips after retune, got %d", dips)
	}
}

func TestLayeredBoundedAndAudible(t *testing.T) {
	g := NewLayered(testRate, DefaultLayeredParams())
	var left, right []float64
	for i := 0; i < testRate*2; i++ {
		l, r := g.Advance()
		if math.Abs(float64(l)) > 1 || math.Abs(float64(r)) > 1 {
			t.Fatalf("sample out of range at frame %d: %f / %f", i, l, r)
		}
		left = append(left, float64(l))
		right = append(right, float64(r))
	}
	if rms(left) < 0.05 || rms(right) < 0.05 {
		t.Fatalf("expected energy on both channels, got rms %f / %f", rms(left), rms(right))
	}
}

func TestLayeredGateModulates(t *testing.T) {
	params := DefaultLayeredParams()
	params.GateDepth = 1
	params.SwellHz = 0 // hold the swell still
	g := NewLayered(testRate, params)
	window := testRate / 100
	var peaks []float64
	peak := 0.0
	for i := 0; i < testRate; i++ {
		l, _ := g.Advance()
		if v := math.Abs(float64(l)); v > peak {
			peak = v
		}
		if (i+1)%window == 0 {
			peaks = append(peaks, peak)
			peak = 0
		}
	}
	var lo, hi float64 = math.Inf(1), 0
	for _, p := range peaks {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	if lo > hi*0.3 {
		t.Fatalf("expected full gate depth to modulate output, got min %f max %f", lo, hi)
	}
}
