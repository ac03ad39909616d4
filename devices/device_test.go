package devices

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/c8/display"
)

func TestConnect(t *testing.T) {
	var dm Map

	if !dm.Connect(&testDevice{id: NewID(Builtin, 1)}) {
		t.Fatalf("expected first device to connect")
	}

	if dm.Connect(&testDevice{id: NewID(Builtin, 1)}) {
		t.Fatalf("expected duplicate device to be rejected")
	}

	if !dm.Connect(&testDevice{id: NewID(Builtin, 2)}) {
		t.Fatalf("expected second device to connect")
	}

	if dm.Find(NewID(Builtin, 2)) != 1 {
		t.Fatalf("expected device 2 at index 1")
	}

	if dm.Find(NewID(Builtin, 3)) != -1 {
		t.Fatalf("expected unknown device to be missing")
	}
}

func TestStartupErrors(t *testing.T) {
	var dm Map
	dm.Connect(&testDevice{id: NewID(Builtin, 1)})
	dm.Connect(&testDevice{id: NewID(Builtin, 2), err: errors.New("broken")})
	dm.Connect(&testDevice{id: NewID(Builtin, 3), err: errors.New("missing")})

	err := dm.Startup()
	if err == nil {
		t.Fatalf("expected startup error")
	}

	set, ok := err.(ErrorSet)
	if !ok || set.Len() != 2 {
		t.Fatalf("expected an ErrorSet with 2 entries; have %#v", err)
	}

	want := "00c8:0002: broken; 00c8:0003: missing"
	if err.Error() != want {
		t.Fatalf("want %q, have %q", want, err.Error())
	}

	for i, dev := range dm {
		if !dev.(*testDevice).started {
			t.Fatalf("device %d was not started", i)
		}
	}

	if err := dm.Shutdown(); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	var order strings.Builder
	var dm Map
	dm.Connect(&testDevice{id: NewID(Builtin, 1), log: &order})
	dm.Connect(&testDevice{id: NewID(Builtin, 2), log: &order})

	m := &testMachine{}
	dm.Update(m)

	if order.String() != "00c8:0001 00c8:0002 " {
		t.Fatalf("unexpected update order %q", order.String())
	}

	if !m.keys[1] || !m.keys[2] {
		t.Fatalf("expected devices to update machine state")
	}
}

func TestID(t *testing.T) {
	id := NewID(0xc8, 0x1234)
	if id.Manufacturer() != 0xc8 || id.Serial() != 0x1234 {
		t.Fatalf("unexpected id components: %v", id)
	}
	if id.String() != "00c8:1234" {
		t.Fatalf("unexpected id string: %q", id.String())
	}
}

type testDevice struct {
	id      ID
	err     error
	log     *strings.Builder
	started bool
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	d.started = true
	return d.err
}

func (d *testDevice) Shutdown() error { return nil }

func (d *testDevice) Update(m Machine) {
	if d.log != nil {
		d.log.WriteString(d.id.String() + " ")
	}
	m.SetKey(d.id.Serial(), true)
}

type testMachine struct {
	keys [16]bool
	fb   display.Framebuffer
}

func (m *testMachine) SetKey(key int, pressed bool)  { m.keys[key&0xf] = pressed }
func (m *testMachine) TickTimers()                   {}
func (m *testMachine) SoundTimer() byte              { return 0 }
func (m *testMachine) Display() *display.Framebuffer { return &m.fb }
func (m *testMachine) Redraw() bool                  { return false }
func (m *testMachine) ClearRedraw()                  {}
