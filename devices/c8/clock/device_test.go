package clock

import (
	"testing"
	"time"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/display"
)

func TestUpdate(t *testing.T) {
	d := New()
	d.interval = time.Millisecond

	if err := d.Startup(); err != nil {
		t.Fatalf("Startup failure: %v", err)
	}

	time.Sleep(time.Millisecond * 50)

	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown failure: %v", err)
	}

	var m testMachine
	d.Update(&m)

	if m.ticks == 0 || m.ticks > Frequency {
		t.Fatalf("expected between 1 and %d ticks; have %d", Frequency, m.ticks)
	}

	m.ticks = 0
	d.Update(&m)

	if m.ticks != 0 {
		t.Fatalf("expected pending ticks to be drained; have %d", m.ticks)
	}
}

func TestShutdownTwice(t *testing.T) {
	d := New()
	d.Startup()

	if err := d.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := d.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

type testMachine struct {
	ticks int
	fb    display.Framebuffer
}

var _ devices.Machine = &testMachine{}

func (m *testMachine) SetKey(int, bool)              {}
func (m *testMachine) TickTimers()                   { m.ticks++ }
func (m *testMachine) SoundTimer() byte              { return 0 }
func (m *testMachine) Display() *display.Framebuffer { return &m.fb }
func (m *testMachine) Redraw() bool                  { return false }
func (m *testMachine) ClearRedraw()                  {}
