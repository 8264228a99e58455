package pitchfork

// Injector is a socket for injecting messages onto a bus from the local
// thing.  Injected messages are dispatched on the injector's goroutine,
// so a thing can inject from its own handlers without re-entering the
// bus.
type Injector struct {
	socket
	wire chan *Msg
}

func NewInjector(name string, bus *Bus) *Injector {
	i := &Injector{
		socket: socket{name, "", 0, bus},
		wire:   make(chan *Msg),
	}
	bus.plugin(i)
	go i.run()
	return i
}

func (i *Injector) run() {
	for msg := range i.wire {
		msg.bus = i.bus
		msg.src = i
		i.bus.receive(msg)
	}
}

// Inject a message into the bus
func (i *Injector) Inject(msg *Msg) {
	i.wire <- msg
}
