// Package pitch computes the tuner's reference frequencies: the
// stretched five-tone tuning table, the chromatic octave around middle
// C, and cent offsets on concert A.  Everything is anchored on
// A4 = 440 Hz.
package pitch

import "math"

// Hz is a frequency in hertz
type Hz float64

// Cents is a pitch offset in hundredths of an equal-tempered semitone
type Cents float64

// Stretch is an octave stretch in beats per second.  Positive values
// widen the lower octaves of the tuning table (flatter bass), negative
// values narrow them.  One beat per second is worth 3.91 cents on the
// A3/A4 pair.
type Stretch float64

const centsPerBeat = 3.91

// Tone indexes the five-tone tuning table, low to high
type Tone int

const (
	F3 Tone = iota
	A3
	CS4
	F4
	A4
)

var toneNames = [...]string{"F3", "A3", "C#4", "F4", "A4"}

func (t Tone) String() string {
	if t < F3 || t > A4 {
		return "?"
	}
	return toneNames[t]
}

// NumTones is the size of the tuning table
const NumTones = len(toneNames)

// Table holds the five reference tones, indexed by Tone
type Table [NumTones]Hz

// ratio returns the frequency ratio of c cents
func ratio(c float64) float64 {
	return math.Exp2(c / 1200)
}

// Tuning returns the tuning table for the given octave stretch.  The
// anchor A4 holds at exactly 440 Hz for any stretch; F4 and C#4 are
// equal-tempered from the anchor; A3 and F3 are tempered from their
// octave and twelfth so their upper partials beat against the anchor
// at the stretch rate.
func Tuning(s Stretch) Table {
	sc := float64(s) * centsPerBeat

	f4 := 440 * math.Exp2(-4.0/12)
	cs4 := 440 * math.Exp2(-8.0/12)
	a3 := 2 * 440 / ratio(sc) / 4
	f3 := 3 * f4 / ratio(sc) / 6

	return Table{Hz(f3), Hz(a3), Hz(cs4), Hz(f4), 440}
}

// Offset returns concert A shifted by c cents
func Offset(c Cents) Hz {
	return Hz(440 * ratio(float64(c)))
}

// Chromatic returns the frequency of the i'th note of the chromatic
// octave C4..B4, i in 0..11, equal-tempered on the anchor
func Chromatic(i int) Hz {
	return Hz(440 * math.Exp2(float64(i-9)/12))
}

var chromaticNames = [...]string{
	"C4", "C#4", "D4", "D#4", "E4", "F4",
	"F#4", "G4", "G#4", "A4", "A#4", "B4",
}

// ChromaticName returns the note name of the i'th note of the
// chromatic octave C4..B4
func ChromaticName(i int) string {
	if i < 0 || i >= len(chromaticNames) {
		return "?"
	}
	return chromaticNames[i]
}

// MIDI returns the fractional MIDI note number of f, where A4 is note
// 69
func MIDI(f Hz) float64 {
	return 69 + 12*math.Log2(float64(f)/440)
}
