//go:build tinygo

// Package wio runs the tuner on a Seeed Wio Terminal: the 5-way
// switch stands in for the dial (up/down rotate, center is the
// button), the ILI9341 panel shows the screen through a tinyterm
// terminal, tones leave as USB MIDI, and a DHT22 on the right Grove
// port reads the climate.
package wio

import (
	"fmt"
	"image/color"
	"log"
	"machine"
	"machine/usb/adc/midi"
	"sync"
	"sync/atomic"
	"time"

	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/pitch"
	"github.com/merliot/pitchfork/tuner"
	"tinygo.org/x/drivers/dht"
	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyterm"
)

const dhtPin = machine.A0 // right Grove port

func New(id, model, name string) pitchfork.Thinger {
	println("NEW TUNER WIO")
	return tuner.New(id, model, name, tuner.Gateways{
		Display: newDisplay(),
		Audio:   newAudio(),
		Sensor:  newSensor(),
		Dial:    newDial(),
	})
}

// dial maps the 5-way switch onto the dial: down is clockwise, up is
// counter-clockwise, one press per detent
type dial struct {
	pos   int32
	press machine.Pin
}

func newDial() *dial {
	d := &dial{press: machine.WIO_5S_PRESS}

	up, down := machine.WIO_5S_UP, machine.WIO_5S_DOWN
	for _, pin := range []machine.Pin{up, down, d.press} {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	err := up.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		atomic.AddInt32(&d.pos, -1)
	})
	if err != nil {
		log.Fatal(err)
	}
	err = down.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		atomic.AddInt32(&d.pos, 1)
	})
	if err != nil {
		log.Fatal(err)
	}
	return d
}

func (d *dial) Position() int       { return int(atomic.LoadInt32(&d.pos)) }
func (d *dial) SetPosition(pos int) { atomic.StoreInt32(&d.pos, int32(pos)) }

// active low
func (d *dial) Pressed() bool { return !d.press.Get() }

type display struct {
	term *tinyterm.Terminal
}

func newDisplay() *display {
	machine.SPI3.Configure(machine.SPIConfig{
		SCK:       machine.LCD_SCK_PIN,
		SDO:       machine.LCD_SDO_PIN,
		SDI:       machine.LCD_SDI_PIN,
		Frequency: 40000000,
	})

	backlight := machine.LCD_BACKLIGHT
	backlight.Configure(machine.PinConfig{Mode: machine.PinOutput})

	lcd := ili9341.NewSPI(machine.SPI3, machine.LCD_DC,
		machine.LCD_SS_PIN, machine.LCD_RESET)
	lcd.Configure(ili9341.Config{Rotation: ili9341.Rotation270})
	lcd.FillScreen(color.RGBA{0, 0, 0, 255})
	backlight.High()

	term := tinyterm.NewTerminal(lcd)
	term.Configure(&tinyterm.Config{
		Font:       &freemono.Bold12pt7b,
		FontHeight: 24,
		FontOffset: 18,
	})
	return &display{term: term}
}

func (d *display) Render(lines []string) {
	for _, line := range lines {
		fmt.Fprintf(d.term, "%s\r\n", line)
	}
	fmt.Fprintf(d.term, "\r\n")
}

// audio sends tones out as USB MIDI: nearest note plus a pitch bend,
// like the host MIDI gateway; ticks hit a wood block
type audio struct {
	mu   sync.Mutex
	note uint8
	on   bool
}

var usb = midi.Port()

const (
	cable             = 0
	toneChannel uint8 = 1  // channels 1-based per the usb midi API
	tickChannel uint8 = 10 // percussion
	tickNote    uint8 = 76 // high wood block
	velocity    uint8 = 100
)

func newAudio() *audio {
	return &audio{}
}

func (a *audio) Play(hz pitch.Hz) {
	note := pitch.MIDI(hz)
	nearest := int(note + 0.5)
	if nearest < 0 {
		nearest = 0
	}
	if nearest > 127 {
		nearest = 127
	}
	// 14-bit bend, 8192 center, ±2 semitone range
	bend := uint16(8192 + (note-float64(nearest))/2*8192)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.on {
		usb.NoteOff(cable, toneChannel, midi.Note(a.note), velocity)
	}
	usb.Write(pitchBend(cable, toneChannel, bend))
	usb.NoteOn(cable, toneChannel, midi.Note(nearest), velocity)
	a.note = uint8(nearest)
	a.on = true
}

func (a *audio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.on {
		usb.NoteOff(cable, toneChannel, midi.Note(a.note), velocity)
		a.on = false
	}
}

func (a *audio) Tick(hz pitch.Hz, dur time.Duration) {
	usb.NoteOn(cable, tickChannel, midi.Note(tickNote), velocity)
	time.Sleep(dur)
	usb.NoteOff(cable, tickChannel, midi.Note(tickNote), velocity)
}

var pbuf [4]byte

// pitchBend packs a USB MIDI pitch bend event packet
func pitchBend(cable, channel uint8, bend uint16) []byte {
	pbuf[0] = ((cable & 0xf) << 4) | midi.CINPitchBendChange
	pbuf[1] = midi.MsgPitchBendChange | ((channel - 1) & 0xf)
	pbuf[2] = byte(bend & 0x7f)
	pbuf[3] = byte((bend >> 7) & 0x7f)
	return pbuf[:4]
}

type sensor struct {
	dev dht.Device
}

func newSensor() *sensor {
	return &sensor{dev: dht.New(dhtPin, dht.DHT22)}
}

func (s *sensor) Read() (float64, float64, error) {
	if err := s.dev.ReadMeasurements(); err != nil {
		return 0, 0, err
	}
	temp, err := s.dev.TemperatureFloat(dht.C)
	if err != nil {
		return 0, 0, err
	}
	humidity, err := s.dev.HumidityFloat()
	if err != nil {
		return 0, 0, err
	}
	return float64(temp), float64(humidity), nil
}
