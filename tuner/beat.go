package tuner

import (
	"time"

	"github.com/merliot/pitchfork/pitch"
)

// BeatRate is a metronome rate in ticks per second.  Not to be
// confused with the stretch parameter, which the display also labels
// "BPS" but measures pitch width, not time.
type BeatRate int

var beatRates = [...]BeatRate{1, 3, 5, 7, 9, 11}

func (r BeatRate) interval() time.Duration {
	return time.Second / time.Duration(r)
}

// due reports whether the next tick is due at now, given the last one
func (r BeatRate) due(now, last time.Time) bool {
	return now.Sub(last) >= r.interval()
}

const (
	beatQuantum = 5 * time.Millisecond
	tickHz      = pitch.Hz(1000)
	tickDur     = 30 * time.Millisecond
)

// beatLoop emits metronome ticks while the beat screen is up.  The
// loop keeps its own tick clock; it reads the shared state only to
// learn whether it should be ticking and how fast.
func (t *Tuner) beatLoop() {
	var last time.Time

	for {
		t.Lock()
		active := t.State.Screen == ScreenBeat
		rate := beatRates[t.State.RateIdx]
		t.Unlock()

		if active {
			now := time.Now()
			if rate.due(now, last) {
				last = now
				t.audio.Tick(tickHz, tickDur)
			}
		}

		time.Sleep(beatQuantum)
	}
}
