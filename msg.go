package pitchfork

import (
	"encoding/json"
	"fmt"
)

// Msg is the unit of communication on a Bus.  The payload is JSON with
// at least a Path member, which routes the message to a subscriber.
type Msg struct {
	bus     *Bus
	src     Socketer
	payload []byte
}

func (m *Msg) String() string {
	return string(m.payload)
}

func (m *Msg) Bytes() []byte {
	return m.payload
}

// Src is the socket the message arrived on.
func (m *Msg) Src() Socketer {
	return m.src
}

// Reply sends the message back to the source socket.
func (m *Msg) Reply() *Msg {
	fmt.Printf("Reply: %.80s\r\n", m.String())
	m.src.Send(m)
	return m
}

// Broadcast sends the message to all other sockets sharing the source
// socket's tag.
func (m *Msg) Broadcast() *Msg {
	fmt.Printf("Bcast: %.80s\r\n", m.String())
	m.bus.broadcast(m)
	return m
}

func (m *Msg) Marshal(v any) *Msg {
	var err error
	m.payload, err = json.Marshal(v)
	if err != nil {
		fmt.Printf("Marshal error: %s\r\n", err)
	}
	return m
}

func (m *Msg) Unmarshal(v any) *Msg {
	if err := json.Unmarshal(m.payload, v); err != nil {
		fmt.Printf("Unmarshal error: %s\r\n", err)
	}
	return m
}

func (m *Msg) path() string {
	var thingMsg ThingMsg
	m.Unmarshal(&thingMsg)
	return thingMsg.Path
}
