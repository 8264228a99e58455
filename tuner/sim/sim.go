// Package sim runs the tuner on a host: square-wave audio through the
// sound card, the screen boxed on the terminal, a synthetic climate,
// and a virtual dial driven from a stdin console.
package sim

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/tuner"
)

type Sim struct {
	*tuner.Tuner
	dial *dial
}

// New returns a simulated tuner.  The stretch setting persists to
// settingsFile; audio overrides the default square-wave output (nil
// picks the sound card).
func New(id, model, name, settingsFile string, audio tuner.Audio) pitchfork.Thinger {
	println("NEW TUNER SIM")
	s := &Sim{dial: &dial{}}
	if audio == nil {
		audio = newAudio()
	}
	gw := tuner.Gateways{
		Display: display{},
		Audio:   audio,
		Sensor:  &sensor{start: time.Now()},
		Dial:    s.dial,
	}
	if settingsFile != "" {
		gw.Settings = NewSettings(settingsFile)
	}
	s.Tuner = tuner.New(id, model, name, gw).(*tuner.Tuner)
	return s
}

func (s *Sim) Run(i *pitchfork.Injector) {
	go s.console()
	s.Tuner.Run(i)
}

// dial is the virtual encoder the console turns
type dial struct {
	mu      sync.Mutex
	pos     int
	pressed bool
}

func (d *dial) Position() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

func (d *dial) SetPosition(pos int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pos = pos
}

func (d *dial) Pressed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pressed
}

func (d *dial) turn(detents int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pos += detents
}

func (d *dial) press(down bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pressed = down
}

// display draws the screen as a boxed block on the terminal, border
// dimmed so the screen content stands out
type display struct{}

func (display) Render(lines []string) {
	border := "\033[2m+" + strings.Repeat("-", tuner.Cols) + "+\033[0m"
	fmt.Printf("%s\r\n", border)
	for _, line := range lines {
		fmt.Printf("|%s|\r\n", line)
	}
	fmt.Printf("%s\r\n", border)
}

// sensor synthesizes a slow drift around room climate so the climate
// screen has something to show
type sensor struct {
	start time.Time
}

func (s *sensor) Read() (float64, float64, error) {
	elapsed := time.Since(s.start).Seconds()
	temp := 22 + 3*math.Sin(2*math.Pi*elapsed/600)
	humidity := 45 + 10*math.Sin(2*math.Pi*elapsed/900)
	return temp, humidity, nil
}
