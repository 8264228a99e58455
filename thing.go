package pitchfork

import "fmt"

type ThingFlags uint32

const (
	// Thing is running on real hardware ("on the metal"), not as
	// a shadow of the real thing
	ThingFlagMetal ThingFlags = 1 << iota
)

// Subscribers maps a message path to a message handler.  A thing
// publishes its subscribers to receive messages from the bus.
type Subscribers map[string]func(*Msg)

// Thinger defines a thing interface
type Thinger interface {
	// Subscribers returns the thing's message subscribers
	Subscribers() Subscribers
	// Announce returns the thing's announcement message
	Announce() *Msg
	// Run the thing, blocking forever
	Run(*Injector)
	Id() string
	Model() string
	Name() string
	String() string
	// IsMetal returns true if running on real hardware, false if
	// running as a shadow of the real thing
	IsMetal() bool
	SetFlag(ThingFlags)
	TestFlag(ThingFlags) bool
	// Lock/Unlock the thing's state
	Lock()
	Unlock()
}

// ThingMaker makes a new Thinger, given id, model, and name
type ThingMaker func(id, model, name string) Thinger

// Thing is a base implementation of a Thinger.  Embed Thing to make a
// new thing.
type Thing struct {
	mu    mutex
	id    string
	model string
	name  string
	flags ThingFlags
}

func NewThing(id, model, name string) Thing {
	if !ValidId(id) || !ValidId(model) || name == "" {
		panic("something invalid: id = \"" + id + "\", model = \"" +
			model + "\", name = \"" + name + "\"")
	}
	return Thing{id: id, model: model, name: name}
}

// A valid id is a non-empty string of [a-z], [A-Z], [0-9], underscore,
// or hyphen characters.  Ids name websocket paths and store files, so
// anything fancier is trouble.
func ValidId(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') &&
			(r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') &&
			(r != '_') && (r != '-') {
			return false
		}
	}
	return len(s) > 0
}

func (t *Thing) Subscribers() Subscribers { return nil }

func (t *Thing) Announce() *Msg {
	var msg Msg
	msg.Marshal(&ThingMsgAnnounce{"announce", t.id, t.model, t.name})
	return &msg
}

func (t *Thing) Run(i *Injector) { select {} }

func (t *Thing) Id() string    { return t.id }
func (t *Thing) Model() string { return t.model }
func (t *Thing) Name() string  { return t.name }

func (t *Thing) String() string {
	return fmt.Sprintf("%s/%s/%s", t.id, t.model, t.name)
}

func (t *Thing) IsMetal() bool {
	return t.TestFlag(ThingFlagMetal)
}

func (t *Thing) SetFlag(flag ThingFlags) {
	t.flags |= flag
}

func (t *Thing) TestFlag(flag ThingFlags) bool {
	return (t.flags & flag) != 0
}

func (t *Thing) Lock()   { t.mu.Lock() }
func (t *Thing) Unlock() { t.mu.Unlock() }

// ThingMsg is the prototypical message;  all messages have a Path
type ThingMsg struct {
	Path string
}

// ThingMsgAnnounce announces a thing to a hub
type ThingMsgAnnounce struct {
	Path  string // "announce"
	Id    string
	Model string
	Name  string
}

// ThingMsgDisconnect notifies a hub that a thing's socket dropped
type ThingMsgDisconnect struct {
	Path string // "disconnected"
	Id   string
}
