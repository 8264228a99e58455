// Package hub herds a fleet of things.  Things dial in and announce
// themselves; the hub generates a shadow of each announced thing,
// registers the shadow on the server, and serves a dashboard of the
// fleet.  Browsers view a thing through the hub at /ws/{id}/.
package hub

import (
	"fmt"

	"github.com/merliot/pitchfork"
)

// Child is a thing the hub has seen, now or in a previous life
type Child struct {
	Model  string
	Name   string
	Online bool
}

type factory struct {
	gen pitchfork.ThingMaker
	ann func(*pitchfork.Msg, pitchfork.Thinger)
}

type Hub struct {
	pitchfork.Thing
	pitchfork.ThingMsg
	Children  map[string]*Child  // keyed by id
	factories map[string]factory // keyed by model
	injector  *pitchfork.Injector
}

func New(id, model, name string) *Hub {
	println("NEW HUB")
	h := &Hub{
		Thing:     pitchfork.NewThing(id, model, name),
		ThingMsg:  pitchfork.ThingMsg{Path: "state"},
		Children:  make(map[string]*Child),
		factories: make(map[string]factory),
	}
	// Children restored from a previous run are offline until they
	// dial back in and announce
	pitchfork.ThingRestore(h)
	for _, child := range h.Children {
		child.Online = false
	}
	return h
}

// Register a thing model with the hub.  gen makes the shadow thing
// when a thing of this model announces; ann attaches the announce
// socket to the server (normally Server.Register).
func (h *Hub) Register(model string, gen pitchfork.ThingMaker,
	ann func(*pitchfork.Msg, pitchfork.Thinger)) {
	h.Lock()
	defer h.Unlock()
	h.factories[model] = factory{gen, ann}
}

func (h *Hub) Unregister(model string) {
	h.Lock()
	defer h.Unlock()
	delete(h.factories, model)
}

func (h *Hub) getState(msg *pitchfork.Msg) {
	h.Lock()
	h.Path = "state"
	msg.Marshal(h)
	h.Unlock()
	msg.Reply()
}

// inject tells the dashboards the fleet changed
func (h *Hub) inject() {
	var msg pitchfork.Msg
	h.Lock()
	i := h.injector
	h.Path = "update"
	msg.Marshal(h)
	h.Unlock()
	if i != nil {
		i.Inject(&msg)
	}
}

func (h *Hub) announce(msg *pitchfork.Msg) {
	var ann pitchfork.ThingMsgAnnounce
	msg.Unmarshal(&ann)

	if !pitchfork.ValidId(ann.Id) {
		fmt.Printf("Ignoring announcement, bad id '%s'\r\n", ann.Id)
		return
	}
	if ann.Name == "" {
		ann.Name = ann.Id
	}

	h.Lock()
	factory, ok := h.factories[ann.Model]
	h.Unlock()
	if !ok {
		fmt.Printf("Ignoring announcement, unknown model '%s'\r\n",
			ann.Model)
		return
	}

	thing := factory.gen(ann.Id, ann.Model, ann.Name)
	factory.ann(msg, thing)

	h.Lock()
	h.Children[ann.Id] = &Child{ann.Model, ann.Name, true}
	pitchfork.ThingStore(h)
	h.Unlock()

	h.inject()
}

func (h *Hub) disconnected(msg *pitchfork.Msg) {
	var dis pitchfork.ThingMsgDisconnect
	msg.Unmarshal(&dis)

	h.Lock()
	child, ok := h.Children[dis.Id]
	if ok {
		child.Online = false
		pitchfork.ThingStore(h)
	}
	h.Unlock()

	if ok {
		h.inject()
	}
}

func (h *Hub) update(msg *pitchfork.Msg) {
	msg.Broadcast()
}

func (h *Hub) Subscribers() pitchfork.Subscribers {
	return pitchfork.Subscribers{
		"get/state":    h.getState,
		"announce":     h.announce,
		"disconnected": h.disconnected,
		"update":       h.update,
	}
}

func (h *Hub) Run(i *pitchfork.Injector) {
	h.Lock()
	h.injector = i
	h.Unlock()
	select {}
}
