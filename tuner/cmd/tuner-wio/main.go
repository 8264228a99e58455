//go:build tinygo

package main

import (
	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/tuner/wio"

	_ "github.com/merliot/pitchfork/tinynet/connect"
)

// Overridable at flash time with -ldflags "-X main.hub=wss://.../ws/"
var hub = "ws://192.168.1.10:8080/ws/"

func main() {
	tuner := wio.New("pf-wio-01", "pitchfork", "wiofork")

	server := pitchfork.NewServer(tuner)
	server.DialWebSocket("", "", hub, tuner.Announce())
	server.Run()
}
