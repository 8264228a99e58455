//go:build tinygo

package main

import (
	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/tuner/pico"
)

func main() {
	tuner := pico.New("pf-pico-01", "pitchfork", "picofork")
	pitchfork.NewRunner(tuner).Run()
}
