package tuner

import (
	"math"

	"github.com/merliot/pitchfork/pitch"
)

// Screen is the top-level menu context
type Screen int

const (
	ScreenMain Screen = iota
	ScreenTone
	ScreenBeat
	ScreenClimate
	ScreenA440
	ScreenChromatic
	ScreenAssist
)

// A440View is the sub-view within the pitch A440 screen
type A440View int

const (
	A440Menu A440View = iota
	A440Offset
)

// AssistView is the sub-view within the tune assist screen
type AssistView int

const (
	AssistTop AssistView = iota
	AssistTones
	AssistPlaying
	AssistStretch
)

var (
	mainItems   = [...]string{"Tone", "Beat", "Climate"}
	toneItems   = [...]string{"Pitch A440", "Tune assist", "Chromatic", "Back"}
	a440Items   = [...]string{"Play", "Set offset", "Back"}
	assistItems = [...]string{"Tones", "Stretch", "Back"}
)

// assistBack is the "Back" slot trailing the five tone slots in the
// tune assist tone list
const assistBack = pitch.NumTones

// Stretch lives in [-3, 3] beats per second.  Offset and stretch are
// both edited in tenths per detent, so their dial ranges are the
// bounds times ten.
const (
	stretchMin, stretchMax = -3.0, 3.0
)

// State is the tuner's user-visible state.  It mutates only through
// the intent transitions Rotate, Select, and LongPress; each returns
// the side effects the transition wants, leaving the caller to apply
// them.  No clocks, no hardware: transitions are pure enough to test
// on the bench.
type State struct {
	Screen  Screen
	A440    A440View
	Assist  AssistView
	Cursor  int     // menu cursor for the active item menu
	Slot    int     // tune assist tone slot, 0..5 (5 = Back)
	Note    int     // chromatic note index, C4..B4
	RateIdx int     // index into beatRates
	Offset  float64 // cents on concert A, session only
	Stretch float64 // octave stretch, persisted
	Playing bool
	Freq    float64 // sounding frequency when playing

	// proj mirrors the physical dial counter.  Invariant: proj
	// equals the dial counter after every transition, so a stale
	// physical position can't replay as a spurious jump when the
	// rotation context changes.
	proj int
}

// NewState returns the boot state: main menu, chromatic note parked
// on A4, slowest beat rate
func NewState() State {
	return State{Note: 9}
}

// Command is a side effect requested by a transition
type Command interface {
	command()
}

// PlayCmd starts the reference tone, superseding any sounding tone
type PlayCmd struct{ Hz pitch.Hz }

// StopCmd silences the reference tone
type StopCmd struct{}

// ProjectCmd re-bases the physical dial counter on Pos
type ProjectCmd struct{ Pos int }

// SaveCmd commits the stretch setting to persistent storage
type SaveCmd struct{ Stretch float64 }

func (PlayCmd) command()    {}
func (StopCmd) command()    {}
func (ProjectCmd) command() {}
func (SaveCmd) command()    {}

// Rotate applies a dial movement of delta detents to the active
// context: a value edit where one is live, a cursor move otherwise.
// The new dial basis is always clamped to the context's legal range
// and re-projected.
func (s *State) Rotate(delta int) []Command {
	var cmds []Command

	switch s.Screen {

	case ScreenMain:
		s.Cursor = s.spin(delta, 0, len(mainItems)-1)

	case ScreenTone:
		s.Cursor = s.spin(delta, 0, len(toneItems)-1)

	case ScreenBeat:
		s.RateIdx = s.spin(delta, 0, len(beatRates)-1)

	case ScreenClimate:
		// nothing to turn; hold the dial at zero
		s.spin(delta, 0, 0)

	case ScreenChromatic:
		s.Note = s.spin(delta, 0, 11)
		if s.Playing {
			s.Freq = float64(pitch.Chromatic(s.Note))
			cmds = append(cmds, PlayCmd{pitch.Hz(s.Freq)})
		}

	case ScreenA440:
		if s.A440 == A440Offset {
			tenths := s.spin(delta, -500, 500)
			s.Offset = float64(tenths) / 10
			if s.Playing {
				s.Freq = float64(pitch.Offset(pitch.Cents(s.Offset)))
				cmds = append(cmds, PlayCmd{pitch.Hz(s.Freq)})
			}
		} else {
			s.Cursor = s.spin(delta, 0, len(a440Items)-1)
		}

	case ScreenAssist:
		switch s.Assist {
		case AssistTop:
			s.Cursor = s.spin(delta, 0, len(assistItems)-1)
		case AssistTones:
			s.Slot = s.spin(delta, 0, assistBack)
		case AssistPlaying:
			s.Slot = s.spin(delta, 0, assistBack)
			if s.Slot == assistBack {
				// Rolled onto Back: fall silent
				s.Assist = AssistTones
				s.Playing = false
				s.Freq = 0
				cmds = append(cmds, StopCmd{})
			} else {
				table := pitch.Tuning(pitch.Stretch(s.Stretch))
				s.Freq = float64(table[s.Slot])
				cmds = append(cmds, PlayCmd{pitch.Hz(s.Freq)})
			}
		case AssistStretch:
			tenths := s.spin(delta, -30, 30)
			s.Stretch = float64(tenths) / 10
		}
	}

	return append(cmds, ProjectCmd{s.proj})
}

// spin moves the dial basis by delta, clamped to [lo, hi], and returns
// the new basis
func (s *State) spin(delta, lo, hi int) int {
	s.proj = clampInt(s.proj+delta, lo, hi)
	return s.proj
}

// Select dispatches a button press against the active context.  Any
// sounding tone stops before the dispatch; the prior playing state
// still steers toggles.
func (s *State) Select() []Command {
	var cmds []Command

	wasPlaying := s.Playing
	if s.Playing {
		s.Playing = false
		s.Freq = 0
		cmds = append(cmds, StopCmd{})
	}

	switch s.Screen {

	case ScreenMain:
		switch s.Cursor {
		case 0:
			cmds = s.enterTone(cmds)
		case 1:
			cmds = s.enterBeat(cmds)
		case 2:
			cmds = s.enterClimate(cmds)
		}

	case ScreenTone:
		switch s.Cursor {
		case 0:
			cmds = s.enterA440(cmds)
		case 1:
			cmds = s.enterAssist(cmds)
		case 2:
			cmds = s.enterChromatic(cmds)
		case 3:
			cmds = s.enterMain(cmds)
		}

	case ScreenBeat, ScreenClimate, ScreenChromatic:
		cmds = s.enterMain(cmds)

	case ScreenA440:
		if s.A440 == A440Offset {
			cmds = s.toggleA440(wasPlaying, cmds)
			break
		}
		switch s.Cursor {
		case 0:
			cmds = s.toggleA440(wasPlaying, cmds)
		case 1:
			s.A440 = A440Offset
			cmds = s.project(round(s.Offset*10), cmds)
		case 2:
			cmds = s.exitA440(cmds)
		}

	case ScreenAssist:
		switch s.Assist {
		case AssistTop:
			switch s.Cursor {
			case 0:
				s.Assist = AssistTones
				cmds = s.project(s.Slot, cmds)
			case 1:
				s.Assist = AssistStretch
				cmds = s.project(round(s.Stretch*10), cmds)
			case 2:
				cmds = s.enterMain(cmds)
			}
		case AssistTones:
			if s.Slot == assistBack {
				s.Assist = AssistTop
				s.Cursor = 0
				cmds = s.project(0, cmds)
				break
			}
			s.Assist = AssistPlaying
			table := pitch.Tuning(pitch.Stretch(s.Stretch))
			s.Playing = true
			s.Freq = float64(table[s.Slot])
			cmds = append(cmds, PlayCmd{pitch.Hz(s.Freq)})
			cmds = s.project(s.Slot, cmds)
		case AssistPlaying:
			// Tone already stopped above
			s.Assist = AssistTones
			cmds = s.project(s.Slot, cmds)
		case AssistStretch:
			cmds = append(cmds, SaveCmd{s.Stretch})
			s.Assist = AssistTop
			s.Cursor = 0
			cmds = s.project(0, cmds)
		}
	}

	return cmds
}

// LongPress is the hold-and-release gesture.  It backs out of the
// pitch A440 screen; everywhere else hold duration means nothing and
// the press selects.
func (s *State) LongPress() []Command {
	if s.Screen != ScreenA440 {
		return s.Select()
	}

	var cmds []Command
	if s.Playing {
		s.Playing = false
		s.Freq = 0
		cmds = append(cmds, StopCmd{})
	}
	return s.exitA440(cmds)
}

// toggleA440 toggles the offset-adjusted reference tone
func (s *State) toggleA440(wasPlaying bool, cmds []Command) []Command {
	if wasPlaying {
		return cmds
	}
	s.Playing = true
	s.Freq = float64(pitch.Offset(pitch.Cents(s.Offset)))
	return append(cmds, PlayCmd{pitch.Hz(s.Freq)})
}

// exitA440 backs out to the tone menu, resetting the sub-view.  The
// session offset survives until power-off.
func (s *State) exitA440(cmds []Command) []Command {
	s.Screen = ScreenTone
	s.A440 = A440Menu
	s.Cursor = 0
	return s.project(0, cmds)
}

func (s *State) enterMain(cmds []Command) []Command {
	s.Screen = ScreenMain
	s.Cursor = 0
	return s.project(0, cmds)
}

func (s *State) enterTone(cmds []Command) []Command {
	s.Screen = ScreenTone
	s.Cursor = 0
	return s.project(0, cmds)
}

func (s *State) enterBeat(cmds []Command) []Command {
	s.Screen = ScreenBeat
	return s.project(s.RateIdx, cmds)
}

func (s *State) enterClimate(cmds []Command) []Command {
	s.Screen = ScreenClimate
	return s.project(0, cmds)
}

// enterA440 opens the pitch A440 screen on the menu view.  The dial is
// projected onto the session offset, tenths of a cent per detent, so
// the offset editor picks up exactly where it left off.
func (s *State) enterA440(cmds []Command) []Command {
	s.Screen = ScreenA440
	s.A440 = A440Menu
	s.Cursor = 0
	return s.project(round(s.Offset*10), cmds)
}

func (s *State) enterAssist(cmds []Command) []Command {
	s.Screen = ScreenAssist
	s.Assist = AssistTop
	s.Cursor = 0
	return s.project(0, cmds)
}

// enterChromatic opens the chromatic octave sounding the anchor A4
func (s *State) enterChromatic(cmds []Command) []Command {
	s.Screen = ScreenChromatic
	s.Note = 9
	s.Playing = true
	s.Freq = float64(pitch.Chromatic(s.Note))
	cmds = append(cmds, PlayCmd{pitch.Hz(s.Freq)})
	return s.project(s.Note, cmds)
}

// project re-bases the dial on pos and records the projection
func (s *State) project(pos int, cmds []Command) []Command {
	s.proj = pos
	return append(cmds, ProjectCmd{pos})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(v float64) int {
	return int(math.Round(v))
}
