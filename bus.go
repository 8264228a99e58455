package pitchfork

import "fmt"

// Bus is a message bus.  Sockets plug into the bus and send messages on
// the bus.  A received message is dispatched to the handler registered
// for the source socket's tag.  A broadcast message is delivered to
// every other socket sharing the source socket's tag, so tags act as
// virtual buses, one per thing.
type Bus struct {
	name       string
	socketsMu  rwMutex
	sockets    map[Socketer]bool
	handlersMu rwMutex
	handlers   map[string]func(*Msg)
	socketQ    chan bool
	connect    func(Socketer)
	disconnect func(Socketer)
}

const maxSockets = 200

func NewBus(name string, connect, disconnect func(Socketer)) *Bus {
	if connect == nil {
		connect = func(Socketer) { /* don't notify */ }
	}
	if disconnect == nil {
		disconnect = func(Socketer) { /* don't notify */ }
	}
	return &Bus{
		name:       name,
		sockets:    make(map[Socketer]bool),
		handlers:   make(map[string]func(*Msg)),
		socketQ:    make(chan bool, maxSockets),
		connect:    connect,
		disconnect: disconnect,
	}
}

func (b *Bus) Name() string {
	return b.name
}

// MaxSockets resizes the bus to take n sockets.  Plugging in more than
// n sockets will block until an existing socket unplugs.
func (b *Bus) MaxSockets(n int) {
	b.socketQ = make(chan bool, n)
}

func (b *Bus) plugin(s Socketer) {
	b.socketQ <- true
	//fmt.Printf("Plugin: %s\r\n", s.Name())
	b.socketsMu.Lock()
	b.sockets[s] = true
	b.socketsMu.Unlock()
	b.connect(s)
}

func (b *Bus) unplug(s Socketer) {
	//fmt.Printf("Unplug: %s\r\n", s.Name())
	b.socketsMu.Lock()
	delete(b.sockets, s)
	b.socketsMu.Unlock()
	b.disconnect(s)
	<-b.socketQ
}

// Handle registers a handler for messages arriving on sockets tagged
// with tag.  Returns false if the tag is already handled.
func (b *Bus) Handle(tag string, handler func(*Msg)) bool {
	if handler == nil {
		panic("handler is nil")
	}
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	if _, ok := b.handlers[tag]; ok {
		return false
	}
	b.handlers[tag] = handler
	return true
}

// Unhandle removes the handler for tag.
func (b *Bus) Unhandle(tag string) bool {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	if _, ok := b.handlers[tag]; !ok {
		return false
	}
	delete(b.handlers, tag)
	return true
}

func (b *Bus) receive(msg *Msg) {
	b.handlersMu.RLock()
	defer b.handlersMu.RUnlock()
	if handler, ok := b.handlers[msg.src.Tag()]; ok {
		handler(msg)
	}
}

func (b *Bus) broadcast(msg *Msg) {
	b.socketsMu.RLock()
	defer b.socketsMu.RUnlock()
	for sock := range b.sockets {
		if sock == msg.src {
			continue
		}
		if sock.Tag() != msg.src.Tag() {
			continue
		}
		if !sock.TestFlag(SocketFlagBcast) {
			continue
		}
		if err := sock.Send(msg); err != nil {
			fmt.Printf("Broadcast send error on %s: %s\r\n",
				sock.Name(), err)
		}
	}
}

func (b *Bus) close() {
	b.socketsMu.Lock()
	defer b.socketsMu.Unlock()
	for sock := range b.sockets {
		sock.Close()
	}
}
