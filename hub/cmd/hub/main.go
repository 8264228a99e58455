package main

import (
	"log/slog"
	"os"

	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/hub"
	"github.com/merliot/pitchfork/tuner"
)

func main() {
	var level slog.Level
	level.UnmarshalText([]byte(pitchfork.GetEnv("LOG_LEVEL", "info")))
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	id := pitchfork.GetEnv("ID", "hub1")
	name := pitchfork.GetEnv("NAME", "pitchfork hub")
	addr := pitchfork.GetEnv("ADDR", ":8081")
	user := pitchfork.GetEnv("USER", "")
	passwd := pitchfork.GetEnv("PASSWD", "")
	tlsHost := pitchfork.GetEnv("TLS_HOST", "")

	h := hub.New(id, "hub", name)

	server := pitchfork.NewServer(h)
	server.BasicAuth(user, passwd)
	server.Addr = addr

	h.Register("pitchfork", func(id, model, name string) pitchfork.Thinger {
		return tuner.New(id, model, name, tuner.Gateways{})
	}, server.Register)

	if tlsHost != "" {
		log.Info("serving", "host", tlsHost)
		go server.ServeTLS(tlsHost)
	} else {
		log.Info("serving", "addr", addr)
		go server.ListenAndServe()
	}

	server.Run()
}
