package runner

import (
	"time"
)

const metricsInterval = time.Second

// frameStats are the averaged frame metrics of one interval.
type frameStats struct {
	MsPerFrame float64
	FPS        float64
}

// metrics collects the frame processing times and reports them once per interval.
type metrics struct {
	since  time.Time
	frames int
	busy   time.Duration
}

func (m *metrics) reset(now time.Time) {
	m.since = now
	m.frames = 0
	m.busy = 0
}

// add accounts a frame processed between start and end. It returns the stats
// when a full interval passed since the last report.
func (m *metrics) add(start, end time.Time) (frameStats, bool) {
	m.frames++
	m.busy += end.Sub(start)

	interval := end.Sub(m.since)
	if interval < metricsInterval {
		return frameStats{}, false
	}

	stats := frameStats{
		MsPerFrame: float64(m.busy) / float64(time.Millisecond) / float64(m.frames),
		FPS:        float64(m.frames) / interval.Seconds(),
	}
	m.reset(end)
	return stats, true
}
