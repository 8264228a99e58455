package pitchfork

type SocketFlags uint32

const (
	// Socket wants to receive broadcasts
	SocketFlagBcast SocketFlags = 1 << iota
)

// Socketer defines a socket interface.  A socket plugs into a bus and
// carries Msgs to and from one endpoint: a websocket peer, an MQTT
// broker, or the bus's local injector.
type Socketer interface {
	// Close the socket
	Close()
	// Send a message on the socket
	Send(*Msg) error
	// Name of the socket
	Name() string
	// Tag returns the socket tag.  Tags segment a bus into virtual
	// buses: a broadcast message is delivered only to sockets
	// sharing the source socket's tag.
	Tag() string
	// SetTag sets the socket tag
	SetTag(string)
	// TestFlag returns true if flag is set on socket
	TestFlag(SocketFlags) bool
	// SetFlag sets the flag on socket
	SetFlag(SocketFlags)
}

// socket is a base implementation of a Socketer
type socket struct {
	name  string
	tag   string
	flags SocketFlags
	bus   *Bus
}

func (s *socket) Close() {
}

func (s *socket) Send(msg *Msg) error {
	return nil
}

func (s *socket) Name() string {
	return s.name
}

func (s *socket) Tag() string {
	return s.tag
}

func (s *socket) SetTag(tag string) {
	s.tag = tag
}

func (s *socket) TestFlag(flag SocketFlags) bool {
	return (s.flags & flag) != 0
}

func (s *socket) SetFlag(flag SocketFlags) {
	s.flags |= flag
}
