package pitchfork

import (
	"testing"
	"time"
)

func TestNilConnect(t *testing.T) {
	bus := NewBus("test bus", nil, nil)
	sock := &socket{"test socket", "pf1", 0, bus}
	bus.plugin(sock)
	bus.unplug(sock)
}

func TestConnect(t *testing.T) {
	var plugged, unplugged int
	connect := func(s Socketer) { plugged++ }
	disconnect := func(s Socketer) { unplugged++ }
	bus := NewBus("test bus", connect, disconnect)
	sock := &socket{"test socket", "pf1", 0, bus}
	bus.plugin(sock)
	bus.unplug(sock)
	if plugged != 1 || unplugged != 1 {
		t.Error("Expected 1/1, got", plugged, unplugged)
	}
}

func TestNilHandler(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("did not panic")
		}
	}()
	bus := NewBus("test bus", nil, nil)
	bus.Handle("pf1", nil)
}

func TestHandle(t *testing.T) {
	bus := NewBus("test bus", nil, nil)
	handler := func(msg *Msg) {}
	if !bus.Handle("pf1", handler) {
		t.Error("Handle failed")
	}
	if bus.Handle("pf1", handler) {
		t.Error("Handled duplicate tag")
	}
	if !bus.Unhandle("pf1") {
		t.Error("Unhandle failed")
	}
	if bus.Unhandle("pf1") {
		t.Error("Unhandled unknown tag")
	}
}

func TestReceive(t *testing.T) {
	var got string
	bus := NewBus("test bus", nil, nil)
	bus.Handle("", func(msg *Msg) { got = "viewer " + msg.path() })
	bus.Handle("pf1", func(msg *Msg) { got = "pf1 " + msg.path() })

	sock := &socket{"test socket", "", 0, bus}
	var msg Msg
	msg.Marshal(&ThingMsg{Path: "announce"})
	msg.bus, msg.src = bus, sock

	// Dispatch follows the source socket's tag
	bus.receive(&msg)
	if got != "viewer announce" {
		t.Error("Expected viewer announce, got", got)
	}
	sock.SetTag("pf1")
	bus.receive(&msg)
	if got != "pf1 announce" {
		t.Error("Expected pf1 announce, got", got)
	}
	sock.SetTag("pf2")
	got = ""
	bus.receive(&msg)
	if got != "" {
		t.Error("Expected no dispatch, got", got)
	}
}

func TestMaxSocket(t *testing.T) {
	bus := NewBus("test bus", nil, nil)
	bus.MaxSockets(1)
	sock1 := &socket{"test socket 1", "pf1", 0, bus}
	sock2 := &socket{"test socket 2", "pf1", 0, bus}
	go func() { time.Sleep(time.Second); bus.unplug(sock1) }()
	bus.plugin(sock1)
	// Blocks until sock1 unplugs
	bus.plugin(sock2)
	bus.unplug(sock2)
}

type testSocket struct {
	socket
	sent bool
}

func (s *testSocket) Send(msg *Msg) error {
	s.sent = true
	return nil
}

func TestBroadcast(t *testing.T) {
	bus := NewBus("test bus", nil, nil)
	src := &testSocket{socket: socket{"src", "pf1", SocketFlagBcast, bus}}
	peer := &testSocket{socket: socket{"peer", "pf1", SocketFlagBcast, bus}}
	mute := &testSocket{socket: socket{"mute", "pf1", 0, bus}}
	other := &testSocket{socket: socket{"other", "pf2", SocketFlagBcast, bus}}
	for _, sock := range []*testSocket{src, peer, mute, other} {
		bus.plugin(sock)
	}

	msg := &Msg{bus, src, nil}
	bus.broadcast(msg)

	// Only same-tagged broadcast sockets hear it, and never the source
	if src.sent || !peer.sent || mute.sent || other.sent {
		t.Error("Broadcast went wrong:",
			src.sent, peer.sent, mute.sent, other.sent)
	}
}

func TestInjector(t *testing.T) {
	got := make(chan string, 1)
	bus := NewBus("test bus", nil, nil)
	bus.Handle("", func(msg *Msg) { got <- msg.path() })
	injector := NewInjector("test injector", bus)

	var msg Msg
	injector.Inject(msg.Marshal(&ThingMsg{Path: "update"}))

	select {
	case path := <-got:
		if path != "update" {
			t.Error("Expected update, got", path)
		}
	case <-time.After(time.Second):
		t.Error("Timed out waiting for injected msg")
	}
}
