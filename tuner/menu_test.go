package tuner

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func lastProject(c *qt.C, cmds []Command) int {
	c.Helper()
	for i := len(cmds) - 1; i >= 0; i-- {
		if p, ok := cmds[i].(ProjectCmd); ok {
			return p.Pos
		}
	}
	c.Fatal("no project command")
	return 0
}

func firstPlay(cmds []Command) (float64, bool) {
	for _, cmd := range cmds {
		if p, ok := cmd.(PlayCmd); ok {
			return float64(p.Hz), true
		}
	}
	return 0, false
}

func firstSave(cmds []Command) (SaveCmd, bool) {
	for _, cmd := range cmds {
		if s, ok := cmd.(SaveCmd); ok {
			return s, true
		}
	}
	return SaveCmd{}, false
}

func hasStop(cmds []Command) bool {
	for _, cmd := range cmds {
		if _, ok := cmd.(StopCmd); ok {
			return true
		}
	}
	return false
}

func approxHz(c *qt.C, got float64, want float64) {
	c.Helper()
	c.Assert(got, qt.CmpEquals(cmpopts.EquateApprox(0, 0.01)), want)
}

func TestRotateBounds(t *testing.T) {
	c := qt.New(t)

	// Whatever the travel, the cursor never leaves the menu
	s := NewState()
	s.Rotate(1000)
	c.Assert(s.Cursor, qt.Equals, len(mainItems)-1)
	s.Rotate(-1000)
	c.Assert(s.Cursor, qt.Equals, 0)

	s = State{Screen: ScreenTone}
	s.Rotate(99)
	c.Assert(s.Cursor, qt.Equals, len(toneItems)-1)

	s = State{Screen: ScreenBeat}
	s.Rotate(7)
	c.Assert(s.RateIdx, qt.Equals, len(beatRates)-1)
	s.Rotate(-100)
	c.Assert(s.RateIdx, qt.Equals, 0)

	s = State{Screen: ScreenChromatic}
	s.Rotate(100)
	c.Assert(s.Note, qt.Equals, 11)
	s.Rotate(-100)
	c.Assert(s.Note, qt.Equals, 0)

	s = State{Screen: ScreenA440, A440: A440Offset, Offset: 49.9}
	s.proj = 499
	s.Rotate(100)
	c.Assert(s.Offset, qt.Equals, 50.0)
	s.Rotate(-2000)
	c.Assert(s.Offset, qt.Equals, -50.0)

	s = State{Screen: ScreenAssist, Assist: AssistStretch, Stretch: 2.9}
	s.proj = 29
	s.Rotate(100)
	c.Assert(s.Stretch, qt.Equals, 3.0)
	s.Rotate(-1000)
	c.Assert(s.Stretch, qt.Equals, -3.0)
}

func TestMenuWalk(t *testing.T) {
	c := qt.New(t)
	s := NewState()

	// Main -> Tone
	cmds := s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenTone)
	c.Assert(lastProject(c, cmds), qt.Equals, 0)

	// Tone Back -> Main
	s.Rotate(3)
	c.Assert(s.Cursor, qt.Equals, 3)
	s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenMain)
	c.Assert(s.Cursor, qt.Equals, 0)

	// Main -> Beat
	s.Rotate(1)
	cmds = s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenBeat)
	c.Assert(lastProject(c, cmds), qt.Equals, 0)

	// Dial picks the rate
	s.Rotate(2)
	c.Assert(beatRates[s.RateIdx], qt.Equals, BeatRate(5))
	s.Rotate(100)
	c.Assert(beatRates[s.RateIdx], qt.Equals, BeatRate(11))

	// Press leaves Beat; the rate sticks for the session
	s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenMain)
	s.Rotate(1)
	cmds = s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenBeat)
	c.Assert(lastProject(c, cmds), qt.Equals, len(beatRates)-1)
	s.Select()

	// Main -> Climate; dial is pinned there
	s.Rotate(2)
	cmds = s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenClimate)
	c.Assert(lastProject(c, cmds), qt.Equals, 0)
	s.Rotate(50)
	c.Assert(s.proj, qt.Equals, 0)
	s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenMain)
}

func TestA440(t *testing.T) {
	c := qt.New(t)
	s := NewState()
	s.Offset = 12.3 // session offset from an earlier visit

	// Enter: dial lands on the session offset, tenths of a cent
	s.Select()
	cmds := s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenA440)
	c.Assert(s.A440, qt.Equals, A440Menu)
	c.Assert(s.Cursor, qt.Equals, 0)
	c.Assert(lastProject(c, cmds), qt.Equals, 123)

	// The first turn re-bases the stale dial into the menu range
	s.Rotate(1)
	c.Assert(s.Cursor, qt.Equals, 2)
	s.Rotate(-10)
	c.Assert(s.Cursor, qt.Equals, 0)

	// Play: tone at the offset-adjusted reference
	cmds = s.Select()
	hz, ok := firstPlay(cmds)
	c.Assert(ok, qt.IsTrue)
	approxHz(c, hz, 443.137)
	c.Assert(s.Playing, qt.IsTrue)

	// Play again: toggles off
	cmds = s.Select()
	c.Assert(hasStop(cmds), qt.IsTrue)
	c.Assert(s.Playing, qt.IsFalse)
	_, ok = firstPlay(cmds)
	c.Assert(ok, qt.IsFalse)

	// Set offset: edit view, dial carries on from the offset
	s.Rotate(1)
	cmds = s.Select()
	c.Assert(s.A440, qt.Equals, A440Offset)
	c.Assert(lastProject(c, cmds), qt.Equals, 123)

	// A detent is a tenth of a cent, clamped at the rails
	s.Rotate(7)
	c.Assert(s.Offset, qt.Equals, 13.0)
	s.Rotate(10000)
	c.Assert(s.Offset, qt.Equals, 50.0)

	// While sounding, turning re-tunes live
	s.Select() // toggle on
	c.Assert(s.Playing, qt.IsTrue)
	cmds = s.Rotate(-500)
	c.Assert(s.Offset, qt.Equals, 0.0)
	hz, ok = firstPlay(cmds)
	c.Assert(ok, qt.IsTrue)
	approxHz(c, hz, 440.0)
	s.Rotate(123)
	c.Assert(s.Offset, qt.Equals, 12.3)

	// A short press here toggles, it doesn't navigate
	cmds = s.Select()
	c.Assert(hasStop(cmds), qt.IsTrue)
	c.Assert(s.A440, qt.Equals, A440Offset)

	// Long press backs out, silent; the session offset survives
	s.Select() // sounding again
	cmds = s.LongPress()
	c.Assert(hasStop(cmds), qt.IsTrue)
	c.Assert(s.Screen, qt.Equals, ScreenTone)
	c.Assert(s.Cursor, qt.Equals, 0)
	c.Assert(s.Playing, qt.IsFalse)
	c.Assert(s.Offset, qt.Equals, 12.3)

	// Re-entry picks the offset right back up
	cmds = s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenA440)
	c.Assert(lastProject(c, cmds), qt.Equals, 123)
}

func TestA440BackItem(t *testing.T) {
	c := qt.New(t)
	s := NewState()

	s.Select() // Main -> Tone
	s.Select() // -> A440

	// Back item stops any tone and returns to the tone menu
	s.Rotate(-1) // pin cursor 0
	s.Select()   // playing
	c.Assert(s.Playing, qt.IsTrue)
	s.Rotate(2) // cursor Back
	c.Assert(s.Cursor, qt.Equals, 2)
	cmds := s.Select()
	c.Assert(hasStop(cmds), qt.IsTrue)
	c.Assert(s.Screen, qt.Equals, ScreenTone)
	c.Assert(s.Playing, qt.IsFalse)
}

func TestLongPressSelectsElsewhere(t *testing.T) {
	c := qt.New(t)
	s := NewState()

	// Outside pitch A440, hold duration means nothing
	s.LongPress()
	c.Assert(s.Screen, qt.Equals, ScreenTone)
	s.Rotate(3)
	s.LongPress()
	c.Assert(s.Screen, qt.Equals, ScreenMain)
}

func TestChromatic(t *testing.T) {
	c := qt.New(t)
	s := NewState()

	s.Select()  // Main -> Tone
	s.Rotate(2) // Chromatic
	cmds := s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenChromatic)
	c.Assert(s.Playing, qt.IsTrue)
	c.Assert(s.Note, qt.Equals, 9)
	c.Assert(lastProject(c, cmds), qt.Equals, 9)
	hz, ok := firstPlay(cmds)
	c.Assert(ok, qt.IsTrue)
	approxHz(c, hz, 440.0)

	// Turning walks the octave, re-tuning live
	cmds = s.Rotate(-9)
	c.Assert(s.Note, qt.Equals, 0)
	hz, ok = firstPlay(cmds)
	c.Assert(ok, qt.IsTrue)
	approxHz(c, hz, 261.626)

	s.Rotate(100)
	c.Assert(s.Note, qt.Equals, 11)

	// Any press returns to Main, silent
	cmds = s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenMain)
	c.Assert(hasStop(cmds), qt.IsTrue)
	c.Assert(s.Playing, qt.IsFalse)
}

func TestAssist(t *testing.T) {
	c := qt.New(t)
	s := NewState()
	s.Stretch = 1.2

	s.Select()  // Main -> Tone
	s.Rotate(1) // Tune assist
	cmds := s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenAssist)
	c.Assert(s.Assist, qt.Equals, AssistTop)
	c.Assert(lastProject(c, cmds), qt.Equals, 0)

	// Top list cursor
	s.Rotate(5)
	c.Assert(s.Cursor, qt.Equals, 2)
	s.Rotate(-2)
	c.Assert(s.Cursor, qt.Equals, 0)

	// Tones: the five slots then Back
	cmds = s.Select()
	c.Assert(s.Assist, qt.Equals, AssistTones)
	c.Assert(lastProject(c, cmds), qt.Equals, 0)

	s.Rotate(2) // C#4
	cmds = s.Select()
	c.Assert(s.Assist, qt.Equals, AssistPlaying)
	c.Assert(s.Playing, qt.IsTrue)
	hz, ok := firstPlay(cmds)
	c.Assert(ok, qt.IsTrue)
	approxHz(c, hz, 277.183) // stretch leaves C#4 alone

	// Turning live-switches the sounding tone, stretch applied
	cmds = s.Rotate(-1)
	c.Assert(s.Slot, qt.Equals, 1) // A3
	hz, ok = firstPlay(cmds)
	c.Assert(ok, qt.IsTrue)
	approxHz(c, hz, 219.405)

	// Rolling onto Back falls silent, back to the tone list
	cmds = s.Rotate(100)
	c.Assert(s.Slot, qt.Equals, assistBack)
	c.Assert(s.Assist, qt.Equals, AssistTones)
	c.Assert(s.Playing, qt.IsFalse)
	c.Assert(hasStop(cmds), qt.IsTrue)

	// Back slot returns to the top
	s.Select()
	c.Assert(s.Assist, qt.Equals, AssistTop)
	c.Assert(s.Cursor, qt.Equals, 0)

	// Stretch edit: the dial is the value, tenths per detent
	s.Rotate(1)
	cmds = s.Select()
	c.Assert(s.Assist, qt.Equals, AssistStretch)
	c.Assert(lastProject(c, cmds), qt.Equals, 12)

	s.Rotate(-100)
	c.Assert(s.Stretch, qt.Equals, -3.0)
	s.Rotate(5)
	c.Assert(s.Stretch, qt.Equals, -2.5)

	// Commit saves and returns to the top
	cmds = s.Select()
	c.Assert(s.Assist, qt.Equals, AssistTop)
	save, ok := firstSave(cmds)
	c.Assert(ok, qt.IsTrue)
	c.Assert(save.Stretch, qt.Equals, -2.5)

	// Back on the top menu goes home
	s.Rotate(2)
	s.Select()
	c.Assert(s.Screen, qt.Equals, ScreenMain)
}

func TestSelectStopsToneFirst(t *testing.T) {
	c := qt.New(t)
	s := NewState()

	s.Select()  // Main -> Tone
	s.Rotate(2) // Chromatic
	s.Select()  // playing A4
	c.Assert(s.Playing, qt.IsTrue)

	// The stop leads every dispatch
	cmds := s.Select()
	c.Assert(len(cmds) > 0, qt.IsTrue)
	c.Assert(cmds[0], qt.Equals, Command(StopCmd{}))
}

func TestProjectionTracksDial(t *testing.T) {
	c := qt.New(t)
	s := NewState()

	// After every transition that projects, the projected position
	// matches the state's dial basis
	check := func(cmds []Command) {
		for i := len(cmds) - 1; i >= 0; i-- {
			if p, ok := cmds[i].(ProjectCmd); ok {
				c.Assert(p.Pos, qt.Equals, s.proj)
				return
			}
		}
	}

	deltas := []int{5, -3, 1000, -1000, 1, 2, -7, 9, 4, -1}
	for i, d := range deltas {
		check(s.Rotate(d))
		if i%2 == 0 {
			check(s.Select())
		} else {
			check(s.LongPress())
		}
	}
}
