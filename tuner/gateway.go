package tuner

import (
	"errors"
	"sync"
	"time"

	"github.com/merliot/pitchfork/pitch"
)

// The tuner reaches its hardware through gateways.  Each build plugs
// in what its hardware has; anything left nil defaults to a no-op,
// which is all a shadow thing wants.

// Display renders the tuner's screen, Cols columns by Rows lines
type Display interface {
	Render(lines []string)
}

// Audio sounds reference tones and metronome ticks
type Audio interface {
	// Play sounds a continuous tone at hz, replacing any current
	// tone
	Play(hz pitch.Hz)
	// Stop silences the tone
	Stop()
	// Tick sounds one metronome tick of the given duration
	Tick(hz pitch.Hz, dur time.Duration)
}

// Sensor reads ambient temperature (C) and relative humidity (%)
type Sensor interface {
	Read() (temp, humidity float64, err error)
}

// Settings persists small values across power cycles
type Settings interface {
	Get(key string, def float64) float64
	Put(key string, val float64) error
}

// Dial is the rotary encoder with push button
type Dial interface {
	// Position returns the current detent count
	Position() int
	// SetPosition rewrites the detent count, re-basing the dial on
	// a new value
	SetPosition(pos int)
	// Pressed returns true while the button is down
	Pressed() bool
}

// Gateways bundles the hardware gateways for one build of the tuner
type Gateways struct {
	Display  Display
	Audio    Audio
	Sensor   Sensor
	Settings Settings
	Dial     Dial
}

func (g *Gateways) fill() {
	if g.Display == nil {
		g.Display = nopDisplay{}
	}
	if g.Audio == nil {
		g.Audio = nopAudio{}
	}
	if g.Sensor == nil {
		g.Sensor = nopSensor{}
	}
	if g.Settings == nil {
		g.Settings = &RAMSettings{}
	}
	if g.Dial == nil {
		g.Dial = &nopDial{}
	}
}

var errNoSensor = errors.New("no sensor")

type nopDisplay struct{}

func (nopDisplay) Render([]string) {}

type nopAudio struct{}

func (nopAudio) Play(pitch.Hz)                {}
func (nopAudio) Stop()                        {}
func (nopAudio) Tick(pitch.Hz, time.Duration) {}

type nopSensor struct{}

func (nopSensor) Read() (float64, float64, error) { return 0, 0, errNoSensor }

type nopDial struct {
	pos int
}

func (d *nopDial) Position() int       { return d.pos }
func (d *nopDial) SetPosition(pos int) { d.pos = pos }
func (d *nopDial) Pressed() bool       { return false }

// RAMSettings holds settings in memory only, for builds without a
// persistent store
type RAMSettings struct {
	mu   sync.Mutex
	vals map[string]float64
}

func (s *RAMSettings) Get(key string, def float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if val, ok := s.vals[key]; ok {
		return val
	}
	return def
}

func (s *RAMSettings) Put(key string, val float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vals == nil {
		s.vals = make(map[string]float64)
	}
	s.vals[key] = val
	return nil
}
