//go:build tinygo

// Package pico runs the tuner on a Raspberry Pi Pico: quadrature
// encoder with push button, SSD1306 OLED, piezo buzzer on PWM, and an
// HTS221 climate sensor sharing the OLED's I2C bus.
package pico

import (
	"image/color"
	"log"
	"machine"
	"time"

	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/pitch"
	"github.com/merliot/pitchfork/tuner"
	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/hts221"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Wiring
const (
	encoderA  = machine.GP6
	encoderB  = machine.GP7
	buttonPin = machine.GP2  // to ground, pull-up
	buzzerPin = machine.GP15 // piezo through 1K
)

func New(id, model, name string) pitchfork.Thinger {
	println("NEW TUNER PICO")
	return tuner.New(id, model, name, tuner.Gateways{
		Display: newDisplay(),
		Audio:   newAudio(),
		Sensor:  newSensor(),
		Dial:    newDial(),
	})
}

// dial reads the encoder via pin interrupts; one Position unit is one
// detent
type dial struct {
	enc    *encoders.QuadratureDevice
	button machine.Pin
}

func newDial() *dial {
	d := &dial{button: buttonPin}
	d.button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	d.enc = encoders.NewQuadratureViaInterrupt(encoderA, encoderB)
	d.enc.Configure(encoders.QuadratureConfig{Precision: 4})
	return d
}

func (d *dial) Position() int       { return d.enc.Position() }
func (d *dial) SetPosition(pos int) { d.enc.SetPosition(pos) }

// active low
func (d *dial) Pressed() bool { return !d.button.Get() }

type display struct {
	dev ssd1306.Device
}

func newDisplay() *display {
	machine.I2C0.Configure(machine.I2CConfig{})

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{Width: 128, Height: 64, Address: 0x3C})
	dev.ClearDisplay()
	return &display{dev: dev}
}

var white = color.RGBA{255, 255, 255, 255}

func (d *display) Render(lines []string) {
	d.dev.ClearBuffer()
	for i, line := range lines {
		tinyfont.WriteLine(&d.dev, &proggy.TinySZ8pt7b, 0,
			int16(12+16*i), line, white)
	}
	d.dev.Display()
}

// audio drives the buzzer with a 50% duty square wave
type audio struct {
	ch uint8
}

var buzzer = machine.PWM7 // GP15's slice

func newAudio() *audio {
	if err := buzzer.Configure(machine.PWMConfig{}); err != nil {
		log.Fatal(err)
	}
	ch, err := buzzer.Channel(buzzerPin)
	if err != nil {
		log.Fatal(err)
	}
	a := &audio{ch: ch}
	a.Stop()
	return a
}

func (a *audio) Play(hz pitch.Hz) {
	buzzer.SetPeriod(uint64(1e9 / float64(hz)))
	buzzer.Set(a.ch, buzzer.Top()/2)
}

func (a *audio) Stop() {
	buzzer.Set(a.ch, 0)
}

func (a *audio) Tick(hz pitch.Hz, dur time.Duration) {
	a.Play(hz)
	time.Sleep(dur)
	a.Stop()
}

type sensor struct {
	dev hts221.Device
}

func newSensor() *sensor {
	dev := hts221.New(machine.I2C0)
	dev.Configure()
	return &sensor{dev: dev}
}

func (s *sensor) Read() (float64, float64, error) {
	mc, err := s.dev.ReadTemperature()
	if err != nil {
		return 0, 0, err
	}
	ch, err := s.dev.ReadHumidity()
	if err != nil {
		return 0, 0, err
	}
	// milli-C and centi-%RH
	return float64(mc) / 1000, float64(ch) / 100, nil
}
