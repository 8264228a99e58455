package pitchfork

// Runner runs a thing standalone: no server, no network, just the
// thing on its hardware.  The thing still gets a bus and an injector
// so its internals don't care whether anyone is listening.
type Runner struct {
	thinger  Thinger
	bus      *Bus
	injector *Injector
}

func NewRunner(thinger Thinger) *Runner {
	r := &Runner{thinger: thinger}
	r.bus = NewBus("runner bus", nil, nil)

	subs := thinger.Subscribers()
	r.bus.Handle("", func(msg *Msg) {
		if sub, ok := subs[msg.path()]; ok {
			sub(msg)
		}
	})

	r.injector = NewInjector("runner injector", r.bus)
	return r
}

// Run the thing on this hardware, blocking forever
func (r *Runner) Run() {
	r.thinger.SetFlag(ThingFlagMetal)
	r.thinger.Run(r.injector)
}
