// Package midi adapts the tuner's audio gateway to a MIDI out port, so
// reference tones drive an external synth instead of a speaker.
package midi

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/merliot/pitchfork/pitch"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const (
	toneChannel uint8 = 0
	tickChannel uint8 = 9  // percussion
	tickNote    uint8 = 76 // high wood block
	velocity    uint8 = 100

	// GM pitch bend range, semitones full scale
	bendRange = 2.0
)

// Audio sends tones as note-on with a pitch bend to land between
// semitones; ticks hit a percussion note.  Monophonic like the other
// audio gateways: a new tone replaces the sounding one.
type Audio struct {
	mu   sync.Mutex
	send func(midi.Message) error
	note uint8
	on   bool
}

// NewAudio opens a MIDI out port: the first one, or the first whose
// name contains port.  No port is fatal; a tuner with dead audio is
// no tuner.
func NewAudio(port string) *Audio {
	drv, err := rtmididrv.New()
	if err != nil {
		log.Fatal(err)
	}
	outs, err := drv.Outs()
	if err != nil {
		log.Fatal(err)
	}

	var out drivers.Out
	for _, o := range outs {
		if port == "" || strings.Contains(o.String(), port) {
			out = o
			break
		}
	}
	if out == nil {
		log.Fatalf("no MIDI out port matching %q", port)
	}
	if err := out.Open(); err != nil {
		log.Fatal(err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		log.Fatal(err)
	}

	println("MIDI out:", out.String())
	return &Audio{send: send}
}

func (a *Audio) Play(hz pitch.Hz) {
	note := pitch.MIDI(hz)
	nearest := int(note + 0.5)
	if nearest < 0 {
		nearest = 0
	}
	if nearest > 127 {
		nearest = 127
	}
	bend := int16((note - float64(nearest)) / bendRange * 8192)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.on {
		a.emit(midi.NoteOff(toneChannel, a.note))
	}
	a.emit(midi.Pitchbend(toneChannel, bend))
	a.emit(midi.NoteOn(toneChannel, uint8(nearest), velocity))
	a.note = uint8(nearest)
	a.on = true
}

func (a *Audio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.on {
		a.emit(midi.NoteOff(toneChannel, a.note))
		a.on = false
	}
}

func (a *Audio) Tick(hz pitch.Hz, dur time.Duration) {
	a.mu.Lock()
	a.emit(midi.NoteOn(tickChannel, tickNote, velocity))
	a.mu.Unlock()

	time.AfterFunc(dur, func() {
		a.mu.Lock()
		a.emit(midi.NoteOff(tickChannel, tickNote))
		a.mu.Unlock()
	})
}

func (a *Audio) emit(msg midi.Message) {
	if err := a.send(msg); err != nil {
		fmt.Printf("MIDI send error: %s\r\n", err)
	}
}
