package chip8

import (
	"math"
	"time"
)

// TimerFrequency is the rate in Hz at which the delay and sound timers count down.
const TimerFrequency = 60

const timerPeriod = time.Second / TimerFrequency

const maxElapsed = 256 * timerPeriod

// Timers holds the delay and sound timer and decrements them at TimerFrequency,
// independent of the instruction execution rate.
type Timers struct {
	Delay uint8
	Sound uint8

	accumulator time.Duration
}

// Advance accounts the elapsed time in seconds. For every full timer period that
// accumulated, both timers are decremented by one unless they already reached zero.
func (t *Timers) Advance(elapsedSeconds float64) {
	if math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 1) || elapsedSeconds <= 0 {
		return
	}

	// clamped, 256 periods drain both timers
	elapsed := math.Min(elapsedSeconds, maxElapsed.Seconds())
	t.accumulator += time.Duration(math.Round(elapsed * float64(time.Second)))
	for t.accumulator >= timerPeriod {
		if t.Delay > 0 {
			t.Delay--
		}
		if t.Sound > 0 {
			t.Sound--
		}
		t.accumulator -= timerPeriod
	}
}
