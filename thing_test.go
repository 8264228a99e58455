package pitchfork

import "testing"

func TestValidId(t *testing.T) {
	for _, id := range []string{"pf1", "pf-pico-01", "a_b", "X"} {
		if !ValidId(id) {
			t.Error("Expected valid:", id)
		}
	}
	for _, id := range []string{"", "a/b", "a.b", "a b", "pf\\1", "ä"} {
		if ValidId(id) {
			t.Error("Expected invalid:", id)
		}
	}
}

func expectPanic(t *testing.T) {
	if recover() == nil {
		t.Errorf("did not panic")
	}
}

func TestBadId(t *testing.T) {
	defer expectPanic(t)
	NewThing("pf/1", "pitchfork", "bench")
}

func TestBadModel(t *testing.T) {
	defer expectPanic(t)
	NewThing("pf1", "", "bench")
}

func TestEmptyName(t *testing.T) {
	defer expectPanic(t)
	NewThing("pf1", "pitchfork", "")
}

func TestThing(t *testing.T) {
	thing := NewThing("pf1", "pitchfork", "bench tuner")
	if thing.Id() != "pf1" || thing.Model() != "pitchfork" ||
		thing.Name() != "bench tuner" {
		t.Error("Identity scrambled:", thing.String())
	}
	if thing.String() != "pf1/pitchfork/bench tuner" {
		t.Error("Expected pf1/pitchfork/bench tuner, got", thing.String())
	}
	if thing.IsMetal() {
		t.Error("Born metal")
	}
	thing.SetFlag(ThingFlagMetal)
	if !thing.IsMetal() {
		t.Error("Expected metal")
	}
}

func TestAnnounce(t *testing.T) {
	thing := NewThing("pf1", "pitchfork", "bench tuner")
	msg := thing.Announce()

	var ann ThingMsgAnnounce
	msg.Unmarshal(&ann)
	if ann.Path != "announce" || ann.Id != "pf1" ||
		ann.Model != "pitchfork" || ann.Name != "bench tuner" {
		t.Error("Bad announcement:", msg.String())
	}
}
