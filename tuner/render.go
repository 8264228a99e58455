package tuner

import (
	"fmt"
	"strings"

	"github.com/merliot/pitchfork/pitch"
)

// Screen geometry: 16 columns by 4 lines of text.  The same lines
// drive the hardware display, the web UI, and the hub dashboard.
const (
	Cols = 16
	Rows = 4
)

// render draws the state into Rows lines, each padded to Cols
func render(s *State, cl Climate) []string {
	switch s.Screen {
	case ScreenTone:
		return itemView("Tone", toneItems[s.Cursor])
	case ScreenBeat:
		return itemView("Beat",
			fmt.Sprintf("%d BPS", beatRates[s.RateIdx]))
	case ScreenClimate:
		return climateView(cl)
	case ScreenA440:
		return a440View(s)
	case ScreenChromatic:
		return chromaticView(s)
	case ScreenAssist:
		return assistView(s)
	}
	return itemView("Pitchfork", mainItems[s.Cursor])
}

// itemView is the flat menu layout: a title over the selected item,
// bracketed to say "turn me"
func itemView(title, item string) []string {
	return []string{
		center(title),
		center(""),
		center("< " + item + " >"),
		center(""),
	}
}

func climateView(cl Climate) []string {
	temp, rh := "--.- F", "--.- %RH"
	if cl.Valid {
		temp = fmt.Sprintf("%.1f F", fahrenheit(cl.TempC))
		rh = fmt.Sprintf("%.1f %%RH", cl.Humidity)
	}
	return []string{
		center("Climate"),
		center(temp),
		center(rh),
		center(""),
	}
}

func a440View(s *State) []string {
	status := "stopped"
	if s.Playing {
		status = "playing"
	}
	bottom := "adjust offset"
	if s.A440 == A440Menu {
		bottom = "< " + a440Items[s.Cursor] + " >"
	}
	target := float64(pitch.Offset(pitch.Cents(s.Offset)))
	return []string{
		center("Pitch A440"),
		center(fmt.Sprintf("%.2f Hz", target)),
		center(fmt.Sprintf("%+.1fc %s", s.Offset, status)),
		center(bottom),
	}
}

func chromaticView(s *State) []string {
	return []string{
		center("Chromatic"),
		center("< " + pitch.ChromaticName(s.Note) + " >"),
		center(fmt.Sprintf("%.2f Hz", float64(pitch.Chromatic(s.Note)))),
		center(""),
	}
}

func assistView(s *State) []string {
	switch s.Assist {
	case AssistTones:
		item := "Back"
		if s.Slot < assistBack {
			item = pitch.Tone(s.Slot).String()
		}
		return itemView("Tones", item)
	case AssistPlaying:
		return []string{
			center("Tune assist"),
			center("Playing: " + pitch.Tone(s.Slot).String()),
			center(fmt.Sprintf("%.2f Hz", s.Freq)),
			center(""),
		}
	case AssistStretch:
		return []string{
			center("Stretch"),
			center(fmt.Sprintf("%+.1f BPS", s.Stretch)),
			center(stretchLabel(s.Stretch)),
			center("press to save"),
		}
	}

	// AssistTop: the three items with a cursor marker
	lines := []string{center("Tune assist")}
	for i, item := range assistItems {
		marker := "  "
		if i == s.Cursor {
			marker = "> "
		}
		lines = append(lines, pad(marker+item))
	}
	return lines
}

// stretchLabel names the stretch direction
func stretchLabel(stretch float64) string {
	switch {
	case stretch > 0:
		return "Widening"
	case stretch < 0:
		return "Narrowing"
	}
	return "Unstretched"
}

// center pads s to Cols, centered
func center(s string) string {
	if len(s) >= Cols {
		return s[:Cols]
	}
	return pad(strings.Repeat(" ", (Cols-len(s))/2) + s)
}

// pad right-pads s to Cols
func pad(s string) string {
	if len(s) >= Cols {
		return s[:Cols]
	}
	return s + strings.Repeat(" ", Cols-len(s))
}
