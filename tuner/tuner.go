// Package tuner implements the pitchfork tuner thing: a five-tone
// stretched-tuning reference, a chromatic octave, a pitch pipe with
// cent offset, a metronome, and an ambient climate display, all driven
// by one rotary dial with a push button.
//
// The tuner runs three workers: the input loop decoding the dial, the
// beat loop ticking the metronome, and the climate loop polling the
// sensor.  Shared state lives in one mutex-guarded container; every
// mutation funnels through intend(), which runs a transition under the
// lock and applies the resulting commands after the lock drops.
package tuner

import (
	"fmt"
	"time"

	"github.com/merliot/pitchfork"
)

const (
	inputQuantum = 10 * time.Millisecond
	stretchKey   = "stretch"
)

type Tuner struct {
	pitchfork.Thing
	pitchfork.ThingMsg
	State
	Climate Climate
	Lines   []string

	display  Display
	audio    Audio
	sensor   Sensor
	settings Settings
	dial     Dial

	dec      decoder
	injector *pitchfork.Injector
}

// New returns a tuner thing wired to the given gateways.  A shadow
// tuner passes Gateways{}; every gateway defaults to a no-op.
func New(id, model, name string, gw Gateways) pitchfork.Thinger {
	println("NEW TUNER")
	gw.fill()
	t := &Tuner{
		Thing:    pitchfork.NewThing(id, model, name),
		State:    NewState(),
		display:  gw.Display,
		audio:    gw.Audio,
		sensor:   gw.Sensor,
		settings: gw.Settings,
		dial:     gw.Dial,
	}
	t.Lines = render(&t.State, t.Climate)
	return t
}

func (t *Tuner) Subscribers() pitchfork.Subscribers {
	return pitchfork.Subscribers{
		"state":     t.saveState,
		"get/state": t.getState,
		"attached":  t.getState,
		"update":    t.update,
		"rotate":    t.rotateMsg,
		"select":    t.selectMsg,
		"exit":      t.exitMsg,
	}
}

// Run drives the tuner hardware, blocking forever.  The stretch
// setting loads once here; everything else boots fresh.
func (t *Tuner) Run(i *pitchfork.Injector) {
	t.Lock()
	t.injector = i
	t.Unlock()

	stretch := t.settings.Get(stretchKey, 0)
	t.intend(func() []Command {
		t.State.Stretch = clampFloat(stretch, stretchMin, stretchMax)
		return nil
	})

	go t.beatLoop()
	go t.climateLoop()

	t.inputLoop()
}

// inputLoop polls the dial each quantum, turning movements and presses
// into intents
func (t *Tuner) inputLoop() {
	for {
		now := time.Now()

		if delta := t.dec.Spin(t.dial.Position(), now); delta != 0 {
			t.intend(func() []Command {
				return t.State.Rotate(delta)
			})
		}

		switch t.dec.Press(t.dial.Pressed(), now) {
		case pressShort:
			t.intend(func() []Command {
				return t.State.Select()
			})
		case pressLong:
			t.intend(func() []Command {
				return t.State.LongPress()
			})
		}

		time.Sleep(inputQuantum)
	}
}

// intend runs one intent.  The transition mutates shared state under
// the thing lock; the commands and the render run after the lock
// drops, so gateway I/O never holds up the other workers.
func (t *Tuner) intend(fn func() []Command) {
	t.Lock()
	cmds := fn()
	t.Lines = render(&t.State, t.Climate)
	lines := append([]string(nil), t.Lines...)
	var msg pitchfork.Msg
	t.Path = "update"
	msg.Marshal(t)
	i := t.injector
	t.Unlock()

	for _, cmd := range cmds {
		t.exec(cmd)
	}
	t.display.Render(lines)

	if i != nil {
		i.Inject(&msg)
	}
}

func (t *Tuner) exec(cmd Command) {
	switch c := cmd.(type) {
	case PlayCmd:
		t.audio.Play(c.Hz)
	case StopCmd:
		t.audio.Stop()
	case ProjectCmd:
		t.dial.SetPosition(c.Pos)
		t.dec.Project(c.Pos, time.Now())
	case SaveCmd:
		if err := t.settings.Put(stretchKey, c.Stretch); err != nil {
			fmt.Printf("Save stretch error: %s\r\n", err)
		}
	}
}

func (t *Tuner) saveState(msg *pitchfork.Msg) {
	t.Lock()
	msg.Unmarshal(t)
	t.Unlock()
}

func (t *Tuner) getState(msg *pitchfork.Msg) {
	t.Lock()
	t.Path = "state"
	msg.Marshal(t)
	t.Unlock()
	msg.Reply()
}

func (t *Tuner) update(msg *pitchfork.Msg) {
	t.Lock()
	msg.Unmarshal(t)
	t.Unlock()
	msg.Broadcast()
}

// Remote intents drive the dial from a browser or MQTT.  On the metal
// they feed the same transitions as the physical dial; on a shadow
// they forward to the metal over the virtual bus.

type rotateMsg struct {
	Path  string
	Delta int
}

func (t *Tuner) rotateMsg(msg *pitchfork.Msg) {
	if !t.IsMetal() {
		msg.Broadcast()
		return
	}
	var rot rotateMsg
	msg.Unmarshal(&rot)
	t.intend(func() []Command {
		return t.State.Rotate(rot.Delta)
	})
}

func (t *Tuner) selectMsg(msg *pitchfork.Msg) {
	if !t.IsMetal() {
		msg.Broadcast()
		return
	}
	t.intend(func() []Command {
		return t.State.Select()
	})
}

func (t *Tuner) exitMsg(msg *pitchfork.Msg) {
	if !t.IsMetal() {
		msg.Broadcast()
		return
	}
	t.intend(func() []Command {
		return t.State.LongPress()
	})
}
