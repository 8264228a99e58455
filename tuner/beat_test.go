package tuner

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestBeatSpacing(t *testing.T) {
	c := qt.New(t)

	// Replay the scheduler's due check over a fake clock: ticks land
	// 1000/rate ms apart, within one scheduling quantum
	for _, rate := range beatRates {
		start := time.Unix(10, 0)
		var last time.Time
		var ticks []time.Time

		for q := 0; q < 2000; q++ {
			now := start.Add(time.Duration(q) * beatQuantum)
			if rate.due(now, last) {
				last = now
				ticks = append(ticks, now)
			}
		}

		c.Assert(len(ticks) > 1, qt.IsTrue, qt.Commentf("rate %d", rate))
		for i := 1; i < len(ticks); i++ {
			gap := ticks[i].Sub(ticks[i-1])
			c.Assert(gap >= rate.interval(), qt.IsTrue,
				qt.Commentf("rate %d gap %v", rate, gap))
			c.Assert(gap < rate.interval()+beatQuantum, qt.IsTrue,
				qt.Commentf("rate %d gap %v", rate, gap))
		}
	}
}

func TestBeatIntervals(t *testing.T) {
	c := qt.New(t)

	c.Assert(BeatRate(1).interval(), qt.Equals, time.Second)
	c.Assert(BeatRate(5).interval(), qt.Equals, 200*time.Millisecond)

	// The rate set is fixed
	c.Assert(beatRates, qt.Equals, [...]BeatRate{1, 3, 5, 7, 9, 11})
}
