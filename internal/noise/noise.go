// Package noise generates pink and brown noise beds.
package noise

import (
	"math/bits"

	"github.com/ambitone/ambitone-go/internal/dsp"
)

// pinkRows is the number of Voss-McCartney generator rows. 16 rows push
// the lowest octave well below audibility at 48 kHz.
const pinkRows = 16

const (
	pinkLevel  = 0.32
	brownLevel = 0.42
)

// pinkChannel is a single Voss-McCartney pink noise generator. Each
// sample updates exactly one row, chosen by the trailing zero count of
// a running counter, plus a fresh white component.
type pinkChannel struct {
	rng     dsp.LCG
	rows    [pinkRows]float64
	sum     float64
	counter uint32
}

func newPinkChannel(seed uint32) *pinkChannel {
	c := &pinkChannel{rng: dsp.NewLCG(seed)}
	for i := range c.rows {
		c.rows[i] = c.rng.Next()
		c.sum += c.rows[i]
	}
	return c
}

func (c *pinkChannel) next() float64 {
	c.counter++
	row := bits.TrailingZeros32(c.counter)
	if row >= pinkRows {
		row = pinkRows - 1
	}
	c.sum -= c.rows[row]
	c.rows[row] = c.rng.Next()
	c.sum += c.rows[row]
	return (c.sum + c.rng.Next()) / float64(pinkRows+1)
}

// Pink renders decorrelated pink noise on each channel.
type Pink struct {
	left  *pinkChannel
	right *pinkChannel
}

func NewPink(seed uint32) *Pink {
	if seed == 0 {
		seed = 0xACE1
	}
	return &Pink{
		left:  newPinkChannel(seed),
		right: newPinkChannel(seed*2654435761 + 1),
	}
}

func (p *Pink) Advance() (float32, float32) {
	return float32(p.left.next() * pinkLevel), float32(p.right.next() * pinkLevel)
}

// Brown renders brown noise by leaky integration of white noise,
// decorrelated across channels.
type Brown struct {
	lrng, rrng dsp.LCG
	l, r       float64
}

func NewBrown(seed uint32) *Brown {
	if seed == 0 {
		seed = 0xACE1
	}
	return &Brown{
		lrng: dsp.NewLCG(seed),
		rrng: dsp.NewLCG(seed*2654435761 + 1),
	}
}

func brownStep(y, white float64) float64 {
	y = y*0.99 + white*0.02
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	return y
}

func (b *Brown) Advance() (float32, float32) {
	b.l = brownStep(b.l, b.lrng.Next())
	b.r = brownStep(b.r, b.rrng.Next())
	return float32(b.l * brownLevel), float32(b.r * brownLevel)
}
