// Package sound generates the CHIP-8 beep tone and records it.
package sound

import "math"

// Tone settings of the beeper.
const (
	SampleRate = 44100 // samples per second
	Frequency  = 440   // Hz of the square wave
	Silence    = 0x80  // unsigned 8-bit silence level
	amplitude  = 0x20
)

// Beeper produces an unsigned 8-bit mono square wave while the sound timer is
// active. The wave phase is kept across calls so that consecutive ticks join
// without clicks.
type Beeper struct {
	sampleRate int
	halfPeriod int
	phase      int
	carry      float64 // fractional samples not yet produced
}

// NewBeeper returns a beeper producing samples at the given rate.
func NewBeeper(sampleRate int) *Beeper {
	return &Beeper{
		sampleRate: sampleRate,
		halfPeriod: max(sampleRate/Frequency/2, 1),
	}
}

// Samples returns the samples for the elapsed seconds, a square wave if active
// is set and silence otherwise.
func (b *Beeper) Samples(active bool, elapsedSeconds float64) []uint8 {
	exact := elapsedSeconds*float64(b.sampleRate) + b.carry
	count := int(math.Floor(exact + 1e-9))
	b.carry = exact - float64(count)
	if count <= 0 {
		return nil
	}

	samples := make([]uint8, count)
	for i := range samples {
		if !active {
			samples[i] = Silence
			continue
		}

		if (b.phase/b.halfPeriod)%2 == 0 {
			samples[i] = Silence + amplitude
		} else {
			samples[i] = Silence - amplitude
		}
		b.phase = (b.phase + 1) % (2 * b.halfPeriod)
	}
	return samples
}
