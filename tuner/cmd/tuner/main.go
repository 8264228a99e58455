package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/tuner"
	"github.com/merliot/pitchfork/tuner/midi"
	"github.com/merliot/pitchfork/tuner/sim"
)

func main() {
	midiPort := flag.String("midi", pitchfork.GetEnv("MIDI_PORT", ""),
		"play tones on a MIDI output port (substring match) instead of the sound card")
	flag.Parse()

	var level slog.Level
	level.UnmarshalText([]byte(pitchfork.GetEnv("LOG_LEVEL", "info")))
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	id := pitchfork.GetEnv("ID", "pf1")
	name := pitchfork.GetEnv("NAME", "pitchfork1")
	addr := pitchfork.GetEnv("ADDR", ":8080")
	user := pitchfork.GetEnv("USER", "")
	passwd := pitchfork.GetEnv("PASSWD", "")
	hub := pitchfork.GetEnv("HUB", "")
	broker := pitchfork.GetEnv("MQTT_BROKER", "")
	settings := pitchfork.GetEnv("SETTINGS", "pitchfork.yml")
	tlsHost := pitchfork.GetEnv("TLS_HOST", "")

	var audio tuner.Audio
	if *midiPort != "" {
		audio = midi.NewAudio(*midiPort)
	}

	thing := sim.New(id, "pitchfork", name, settings, audio)

	server := pitchfork.NewServer(thing)
	server.BasicAuth(user, passwd)
	server.Addr = addr

	if hub != "" {
		server.DialWebSocket(user, passwd, hub, thing.Announce())
	}

	if broker != "" {
		if err := server.BridgeMQTT(broker); err != nil {
			log.Error("MQTT bridge disabled", "err", err)
		}
	}

	if tlsHost != "" {
		log.Info("serving", "host", tlsHost)
		go server.ServeTLS(tlsHost)
	} else {
		log.Info("serving", "addr", addr)
		go server.ListenAndServe()
	}

	server.Run()
}
