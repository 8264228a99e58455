package pitchfork

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/websocket"
)

// Dead peer detection: the dialing side pings every pingPeriod; the
// serving side pongs.  Either side drops the conn if nothing arrives
// within the period plus grace.
const (
	pingPeriod = 4 * time.Second
	pingGrace  = 4 * time.Second
)

type webSocket struct {
	socket
	conn *websocket.Conn
}

func newWebSocket(name string, bus *Bus) *webSocket {
	ws := &webSocket{socket: socket{name, "", 0, bus}}
	ws.SetFlag(SocketFlagBcast)
	return ws
}

func (w *webSocket) Close() {
	if w.conn != nil {
		w.conn.Close()
	}
}

func (w *webSocket) Send(msg *Msg) error {
	if w.conn == nil {
		return fmt.Errorf("send on closed websocket %s", w.Name())
	}
	return websocket.Message.Send(w.conn, string(msg.payload))
}

// Dial connects to a websocket server, announcing the thing once
// connected.  Dial retries forever, reconnecting a second after any
// failure or disconnect.
func (w *webSocket) Dial(user, passwd, url string, announce *Msg) {
	origin := "http://localhost/"

	// Ask the server to expect our pings
	if !strings.Contains(url, "ping-period") {
		url += "?ping-period=" + strconv.Itoa(int(pingPeriod/time.Second))
	}

	for {
		config, err := websocket.NewConfig(url, origin)
		if err != nil {
			fmt.Printf("Config error %s: %s\r\n", url, err)
			return
		}
		if user != "" {
			config.Header.Set("Authorization", "Basic "+
				base64.StdEncoding.EncodeToString([]byte(user+":"+passwd)))
		}

		conn, err := websocket.DialConfig(config)
		if err == nil {
			w.conn = conn
			if w.announced(announce) {
				w.bus.plugin(w)
				w.serveClient()
				w.bus.unplug(w)
			}
			conn.Close()
			w.conn = nil
		} else {
			fmt.Printf("Dial error %s: %s\r\n", url, err)
		}

		// Try again in a second
		time.Sleep(time.Second)
	}
}

// announced sends the announcement and waits for the server's ack.
// The ack is any message sent back on the socket; it is handed to the
// bus like any other message.
func (w *webSocket) announced(announce *Msg) bool {
	if err := w.Send(announce); err != nil {
		fmt.Printf("Announce error: %s\r\n", err)
		return false
	}

	var data []byte
	w.conn.SetReadDeadline(time.Now().Add(pingPeriod + pingGrace))
	if err := websocket.Message.Receive(w.conn, &data); err != nil {
		fmt.Printf("Announce not ack'ed: %s\r\n", err)
		return false
	}

	msg := &Msg{bus: w.bus, src: w, payload: data}
	fmt.Printf("Recv: %.80s\r\n", msg.String())
	w.bus.receive(msg)

	return true
}

func (w *webSocket) serveClient() {
	stop := make(chan struct{})
	defer close(stop)
	go w.pinger(stop)

	for {
		var data []byte
		w.conn.SetReadDeadline(time.Now().Add(pingPeriod + pingGrace))
		if err := websocket.Message.Receive(w.conn, &data); err != nil {
			fmt.Printf("Disconnecting %s: %s\r\n", w.Name(), err)
			return
		}
		if string(data) == "pong" {
			continue
		}
		msg := &Msg{bus: w.bus, src: w, payload: data}
		fmt.Printf("Recv: %.80s\r\n", msg.String())
		w.bus.receive(msg)
	}
}

func (w *webSocket) pinger(stop chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	ping := Msg{payload: []byte("ping")}
	for {
		select {
		case <-ticker.C:
			if err := w.Send(&ping); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}

// serveServer serves the server side of a websocket connection.  A
// ?ping-period=x query with x > 0 arms the dead peer check.
func (w *webSocket) serveServer(conn *websocket.Conn) {
	w.conn = conn

	period, _ := strconv.Atoi(conn.Request().URL.Query().Get("ping-period"))

	w.bus.plugin(w)
	defer w.bus.unplug(w)

	for {
		var data []byte
		if period > 0 {
			dur := time.Duration(period) * time.Second
			conn.SetReadDeadline(time.Now().Add(dur + pingGrace))
		}
		if err := websocket.Message.Receive(conn, &data); err != nil {
			fmt.Printf("Disconnecting %s: %s\r\n", w.Name(), err)
			return
		}
		if string(data) == "ping" {
			websocket.Message.Send(conn, "pong")
			continue
		}
		msg := &Msg{bus: w.bus, src: w, payload: data}
		fmt.Printf("Recv: %.80s\r\n", msg.String())
		w.bus.receive(msg)
	}
}
