package sim

import (
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/merliot/pitchfork/pitch"
)

const (
	sampleRate = 44100
	amplitude  = 8192 // quarter scale; square waves carry hot
)

// square is the sample source oto pulls from: a mono signed 16-bit LE
// square wave at the set frequency, silence at zero.  Retunes land on
// the next buffer fill.
type square struct {
	mu     sync.Mutex
	hz     float64
	remain int // samples left in a tick burst, -1 for continuous
	phase  float64
}

func (g *square) set(hz float64, remain int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hz = hz
	g.remain = remain
}

func (g *square) Read(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		var sample int16
		if g.hz > 0 && g.remain != 0 {
			if g.phase < 0.5 {
				sample = amplitude
			} else {
				sample = -amplitude
			}
			g.phase += g.hz / sampleRate
			if g.phase >= 1 {
				g.phase -= 1
			}
			if g.remain > 0 {
				g.remain--
			}
		}
		p[i] = byte(sample)
		p[i+1] = byte(sample >> 8)
	}
	return n, nil
}

type audio struct {
	gen    *square
	player *oto.Player
}

// newAudio opens the sound card.  The player runs for the process
// lifetime, pulling silence when no tone is set.
func newAudio() *audio {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		log.Fatal(err)
	}
	<-ready

	a := &audio{gen: &square{}}
	a.player = ctx.NewPlayer(a.gen)
	a.player.Play()
	return a
}

func (a *audio) Play(hz pitch.Hz) {
	a.gen.set(float64(hz), -1)
}

func (a *audio) Stop() {
	a.gen.set(0, 0)
}

func (a *audio) Tick(hz pitch.Hz, dur time.Duration) {
	a.gen.set(float64(hz), int(dur.Seconds()*sampleRate))
}
