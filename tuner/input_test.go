package tuner

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestSpinDebounce(t *testing.T) {
	c := qt.New(t)
	var d decoder
	t0 := time.Now()

	// First movement applies
	c.Assert(d.Spin(1, t0), qt.Equals, 1)
	d.Project(1, t0)

	// Movement inside the debounce window coalesces...
	c.Assert(d.Spin(2, t0.Add(50*time.Millisecond)), qt.Equals, 0)
	c.Assert(d.Spin(3, t0.Add(100*time.Millisecond)), qt.Equals, 0)

	// ...and is picked up whole once the window passes
	c.Assert(d.Spin(3, t0.Add(151*time.Millisecond)), qt.Equals, 2)
	d.Project(3, t0.Add(151*time.Millisecond))

	// No movement, no intent
	c.Assert(d.Spin(3, t0.Add(400*time.Millisecond)), qt.Equals, 0)

	// Backwards works the same
	c.Assert(d.Spin(-1, t0.Add(600*time.Millisecond)), qt.Equals, -4)
	d.Project(-1, t0.Add(600*time.Millisecond))
}

func TestSpinProject(t *testing.T) {
	c := qt.New(t)
	var d decoder
	t0 := time.Now()

	// A projection re-bases the dial: the old travel is forgotten
	c.Assert(d.Spin(250, t0), qt.Equals, 250)
	d.Project(2, t0)
	c.Assert(d.Spin(2, t0.Add(50*time.Millisecond)), qt.Equals, 0)

	// ...and opens a fresh debounce window
	c.Assert(d.Spin(3, t0.Add(100*time.Millisecond)), qt.Equals, 0)
	c.Assert(d.Spin(3, t0.Add(151*time.Millisecond)), qt.Equals, 1)
}

func TestPressClassify(t *testing.T) {
	c := qt.New(t)
	var d decoder
	t0 := time.Now()

	// Nothing fires while the button is down
	c.Assert(d.Press(true, t0), qt.Equals, pressNone)
	c.Assert(d.Press(true, t0.Add(10*time.Millisecond)), qt.Equals, pressNone)
	c.Assert(d.Press(false, t0.Add(300*time.Millisecond)), qt.Equals, pressShort)

	// 799 ms is still short; 800 ms is long
	c.Assert(d.Press(true, t0), qt.Equals, pressNone)
	c.Assert(d.Press(false, t0.Add(799*time.Millisecond)), qt.Equals, pressShort)
	c.Assert(d.Press(true, t0), qt.Equals, pressNone)
	c.Assert(d.Press(false, t0.Add(800*time.Millisecond)), qt.Equals, pressLong)
	c.Assert(d.Press(true, t0), qt.Equals, pressNone)
	c.Assert(d.Press(false, t0.Add(5*time.Second)), qt.Equals, pressLong)

	// Idle level is quiet
	c.Assert(d.Press(false, t0), qt.Equals, pressNone)
}
