package hub

import (
	"os"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/merliot/pitchfork"
	"github.com/merliot/pitchfork/tuner"
)

// tempWd parks the test in a temp dir so hub store files don't land in
// the package dir
func tempWd(c *qt.C) {
	wd, err := os.Getwd()
	c.Assert(err, qt.IsNil)
	c.Assert(os.Chdir(c.TempDir()), qt.IsNil)
	c.Cleanup(func() { os.Chdir(wd) })
}

func genTuner(id, model, name string) pitchfork.Thinger {
	return tuner.New(id, model, name, tuner.Gateways{})
}

func announce(h *Hub, id, model, name string) {
	var msg pitchfork.Msg
	msg.Marshal(&pitchfork.ThingMsgAnnounce{
		Path: "announce", Id: id, Model: model, Name: name})
	h.announce(&msg)
}

func TestAnnounce(t *testing.T) {
	c := qt.New(t)
	tempWd(c)

	var got []string
	h := New("hub1", "hub", "test hub")
	h.Register("pitchfork", genTuner,
		func(msg *pitchfork.Msg, thing pitchfork.Thinger) {
			got = append(got, thing.String())
		})

	announce(h, "pf1", "pitchfork", "bench")
	c.Assert(got, qt.DeepEquals, []string{"pf1/pitchfork/bench"})
	c.Assert(h.Children["pf1"], qt.DeepEquals,
		&Child{Model: "pitchfork", Name: "bench", Online: true})

	// Unknown models and unusable ids don't attach
	announce(h, "x1", "toaster", "pop")
	announce(h, "", "pitchfork", "anon")
	announce(h, "a/b", "pitchfork", "sneaky")
	c.Assert(got, qt.HasLen, 1)
	c.Assert(h.Children, qt.HasLen, 1)

	// A nameless thing goes by its id
	announce(h, "pf2", "pitchfork", "")
	c.Assert(h.Children["pf2"].Name, qt.Equals, "pf2")

	h.Unregister("pitchfork")
	announce(h, "pf3", "pitchfork", "late")
	c.Assert(got, qt.HasLen, 2)
	c.Assert(h.Children, qt.HasLen, 2)
}

func TestDisconnected(t *testing.T) {
	c := qt.New(t)
	tempWd(c)

	h := New("hub1", "hub", "test hub")
	h.Register("pitchfork", genTuner,
		func(*pitchfork.Msg, pitchfork.Thinger) {})

	announce(h, "pf1", "pitchfork", "bench")
	c.Assert(h.Children["pf1"].Online, qt.IsTrue)

	var msg pitchfork.Msg
	msg.Marshal(&pitchfork.ThingMsgDisconnect{Path: "disconnected", Id: "pf1"})
	h.disconnected(&msg)
	c.Assert(h.Children["pf1"].Online, qt.IsFalse)

	// A drop for an id the hub never met is no news
	msg.Marshal(&pitchfork.ThingMsgDisconnect{Path: "disconnected", Id: "ghost"})
	h.disconnected(&msg)
	c.Assert(h.Children, qt.HasLen, 1)
}

func TestRestore(t *testing.T) {
	c := qt.New(t)
	tempWd(c)

	h := New("hub1", "hub", "test hub")
	h.Register("pitchfork", genTuner,
		func(*pitchfork.Msg, pitchfork.Thinger) {})
	announce(h, "pf1", "pitchfork", "bench")
	announce(h, "pf2", "pitchfork", "stage")

	// A rebooted hub remembers the fleet, offline until things dial
	// back in
	h2 := New("hub1", "hub", "test hub")
	c.Assert(h2.Children, qt.HasLen, 2)
	c.Assert(h2.Children["pf1"].Online, qt.IsFalse)
	c.Assert(h2.Children["pf2"].Online, qt.IsFalse)
}
